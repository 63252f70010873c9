// Package env reads process settings from the environment, optionally
// seeded from a .env file.
package env

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"kml2gpx/internal/logging"
)

// LoadEnv loads .env (or the given files) into the environment. Variables
// already set win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logging.Logger.Debug("no .env file found, assuming environment variables are set directly")
	}
}

// GetEnv returns the variable or def when it is unset or empty.
func GetEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

// RequireEnv returns the variable or an error naming it.
func RequireEnv(key string) (string, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return "", errors.Newf("environment variable %s not set", key)
	}
	return val, nil
}

func MustGetEnv(key string) string {
	val, err := RequireEnv(key)
	if err != nil {
		logging.Logger.Fatal(err)
	}
	return val
}
