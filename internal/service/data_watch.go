package service

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// DataWatchService periodically reports whether the dashboard's data files
// are present and how fresh they are. It only logs; file contents are never
// cached, every view still reads from disk.
type DataWatchService struct {
	PredictionsPath string
	ResultsPath     string
	Logger          *zap.Logger
}

func (s *DataWatchService) Check(ctx context.Context) {
	s.checkOne("predictions", s.PredictionsPath)
	s.checkOne("results", s.ResultsPath)
}

func (s *DataWatchService) checkOne(name, path string) {
	if s.Logger == nil {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		s.Logger.Warn("data file missing",
			zap.String("file", name),
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	s.Logger.Info("data file ok",
		zap.String("file", name),
		zap.String("path", path),
		zap.Int64("size", info.Size()),
		zap.Time("modified", info.ModTime()),
	)
}
