package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by EnvSource.
const EnvPrefix = "CODEPIPELINE_"

// EnvVar returns the environment variable name for a config key,
// e.g. "secretName" becomes "CODEPIPELINE_SECRET_NAME".
func EnvVar(key string) string {
	return EnvPrefix + strcase.ToScreamingSnake(key)
}

type envSource struct{}

// EnvSource reads config keys from the process environment.
func EnvSource() Source {
	return envSource{}
}

func (envSource) Name() string { return "environment" }

func (envSource) Lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(EnvVar(key))
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// LoadDotenv seeds the environment from the given .env files. Files that do
// not exist are skipped, variables already set in the environment win.
func LoadDotenv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load %s", path)
		}
	}
	return nil
}
