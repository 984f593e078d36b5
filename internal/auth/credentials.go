package auth

import "strings"

// LoadCredentials builds the username -> password map. The config file's
// auth.users block wins; otherwise APP_USERS is parsed as comma-separated
// "user:pass" pairs. An empty result means the gate is not configured and
// the caller must refuse to start.
func LoadCredentials(configured map[string]string, getenv func(string) string) map[string]string {
	if len(configured) > 0 {
		creds := make(map[string]string, len(configured))
		for user, pass := range configured {
			creds[user] = pass
		}
		return creds
	}

	creds := map[string]string{}
	for _, pair := range strings.Split(getenv("APP_USERS"), ",") {
		pair = strings.TrimSpace(pair)
		if !strings.Contains(pair, ":") {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		creds[parts[0]] = parts[1]
	}
	return creds
}

// Authenticate is an exact, case-sensitive credential check. No hashing,
// no lockout: this gates an internal dashboard, nothing more.
func Authenticate(username, password string, creds map[string]string) bool {
	stored, ok := creds[username]
	return ok && stored == password
}
