package main

//go:generate swag init -g cmd/dashboard/main.go -o docs

// @title           NFL Picks Dashboard API
// @version         0.1.0
// @description     Session-gated dashboard for NFL game predictions and model performance.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
