// Package config resolves ghfrag settings from flags, the environment and
// the TOML config file.
//
// Token resolution order: explicit --token flag, then the GITHUB_TOKEN
// environment variable, then the config file. The token is read once per
// invocation and passed into the API client's constructor.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvToken is the environment variable holding the access token.
const EnvToken = "GITHUB_TOKEN"

const (
	configDirName  = ".ghfrag"
	configFileName = "config.toml"
)

// Settings holds the on-disk configuration.
type Settings struct {
	Token string `toml:"token"`
}

// DefaultPath returns the config file location (~/.ghfrag/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads settings from path. A missing file yields zero settings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings to path with owner-only permissions, creating the
// directory if needed.
func Save(path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ResolveToken returns the access token for this invocation. An empty
// result means unauthenticated requests.
func ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if token := os.Getenv(EnvToken); token != "" {
		return token
	}

	path, err := DefaultPath()
	if err != nil {
		return ""
	}
	s, err := Load(path)
	if err != nil {
		return ""
	}
	return s.Token
}
