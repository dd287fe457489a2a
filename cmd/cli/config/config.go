package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultAPIURL = "http://localhost:8080"

// File is the on-disk CLI configuration (~/.dayplan/config.toml).
type File struct {
	APIURL string `toml:"api_url"`
	Token  string `toml:"token"`
}

// ErrNotLoggedIn is returned by LoadToken when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run `dayplan users login` first")

// Path returns the config file location. DAYPLAN_CONFIG overrides the default.
func Path() string {
	if v := os.Getenv("DAYPLAN_CONFIG"); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".dayplan", "config.toml")
}

// Load reads the config file. A missing file yields an empty File.
func Load() (File, error) {
	var f File
	if _, err := toml.DecodeFile(Path(), &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, err
	}
	return f, nil
}

// Save writes f, creating the config directory when needed.
func Save(f File) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// APIURL returns the base URL for the dayplan API.
// DAYPLAN_API_URL wins over the config file.
func APIURL() string {
	if v := os.Getenv("DAYPLAN_API_URL"); v != "" {
		return v
	}
	if f, err := Load(); err == nil && f.APIURL != "" {
		return f.APIURL
	}
	return defaultAPIURL
}

// SaveToken stores token, keeping the other settings.
func SaveToken(token string) error {
	f, err := Load()
	if err != nil {
		return err
	}
	f.Token = token
	return Save(f)
}

func LoadToken() (string, error) {
	f, err := Load()
	if err != nil {
		return "", err
	}
	if f.Token == "" {
		return "", ErrNotLoggedIn
	}
	return f.Token, nil
}

// ClearToken removes the saved token and reports whether there was one.
func ClearToken() (bool, error) {
	f, err := Load()
	if err != nil {
		return false, err
	}
	if f.Token == "" {
		return false, nil
	}
	f.Token = ""
	return true, Save(f)
}
