package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Oudwins/seedance/internals/env"
)

const (
	EnvKey     = "ARK_API_KEY"
	DotEnvFile = ".env"
)

var ErrNotFound = errors.New("api key not found")

type Source string

const (
	SourceArgument    Source = "argument"
	SourceEnvironment Source = "environment"
	SourceDotEnv      Source = "dotenv"
)

type Credential struct {
	APIKey string
	Source Source
}

// Resolve picks the API key from, in order: the explicit value, the ARK_API_KEY
// environment variable, then ARK_API_KEY in the dotenv file at dotEnvPath.
// The dotenv file is read but never exported into the process environment.
func Resolve(explicit string, dotEnvPath string) (Credential, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return Credential{APIKey: key, Source: SourceArgument}, nil
	}

	envs, err := env.Load()
	if err != nil {
		return Credential{}, err
	}
	if envs.ARK_API_KEY != "" {
		return Credential{APIKey: envs.ARK_API_KEY, Source: SourceEnvironment}, nil
	}

	if dotEnvPath == "" {
		dotEnvPath = DotEnvFile
	}
	key, err := readDotEnv(dotEnvPath)
	if err != nil {
		return Credential{}, err
	}
	if key != "" {
		return Credential{APIKey: key, Source: SourceDotEnv}, nil
	}

	return Credential{}, ErrNotFound
}

func readDotEnv(path string) (string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(values[EnvKey]), nil
}
