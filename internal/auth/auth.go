// Package auth provides API token resolution.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, resolution order hidden.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvVar is the environment variable read by the default EnvProvider.
const DefaultEnvVar = "TASKDECK_TOKEN"

// TokenProvider defines the interface for obtaining an API token.
// Implementations may use different sources (environment, config file, etc).
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains tokens from an environment variable.
type EnvProvider struct {
	Var string // Variable name; DefaultEnvVar when empty
}

func (e *EnvProvider) name() string {
	if e.Var == "" {
		return DefaultEnvVar
	}
	return e.Var
}

// GetToken reads the environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(e.name()))
	if token == "" {
		return "", fmt.Errorf("%s environment variable not set or empty", e.name())
	}
	return token, nil
}

// StaticProvider returns a token read elsewhere, typically from the config file.
type StaticProvider struct {
	Token  string
	Source string // Where the token came from, used in errors
}

// GetToken returns the static token.
func (s *StaticProvider) GetToken() (string, error) {
	token := strings.TrimSpace(s.Token)
	if token == "" {
		src := s.Source
		if src == "" {
			src = "config"
		}
		return "", fmt.Errorf("no token in %s", src)
	}
	return token, nil
}

// GetToken returns the token of the first provider that has one. When every
// provider fails it returns a clear, actionable error listing each failure.
//
// This is the main entry point for token retrieval in the application.
func GetToken(providers ...TokenProvider) (string, error) {
	if len(providers) == 0 {
		providers = []TokenProvider{&EnvProvider{}}
	}

	var errs []error
	for _, p := range providers {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}

	return "", fmt.Errorf(
		"failed to obtain API token (%w).\n"+
			"Please either:\n"+
			"  1. Set the %s environment variable, or\n"+
			"  2. Set api.token in the config file (see 'taskdeck config path')",
		errors.Join(errs...), DefaultEnvVar,
	)
}
