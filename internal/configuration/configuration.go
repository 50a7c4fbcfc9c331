// Package configuration resolves the runtime settings of relink and
// rimport from an optional env file and the process environment. The
// process environment always wins over the file.
package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultInputdataRoot = "/glade/campaign/cesm/cesmdata/cseg/inputdata"
	DefaultStagingRoot   = "/glade/campaign/collections/gdex/data/d651077/cesmdata/inputdata"

	// DefaultPublishUser is the curator account expected to run rimport.
	DefaultPublishUser = "cseg"

	KeyStagingRoot   = "RIMPORT_STAGING"
	KeyPublishUser   = "RIMPORT_USER"
	KeySkipUserCheck = "RIMPORT_SKIP_USER_CHECK"
)

type envProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

type Handler struct {
	fileEnv map[string]string
}

// NewHandler reads the optional env file through the provider. A missing
// file is not an error, the process environment alone then applies.
func NewHandler(provider envProvider, envFile string) *Handler {
	h := &Handler{}

	if envFile != "" {
		if fileEnv, err := provider.Read(envFile); err == nil {
			h.fileEnv = fileEnv
		}
	}

	return h
}

// Get returns the value for key, preferring the process environment over
// the env file. Empty when set nowhere.
func (c *Handler) Get(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	if value, exists := c.fileEnv[key]; exists {
		return value
	}

	return ""
}

// StagingRoot resolves the staging root: the RIMPORT_STAGING override
// (tilde-expanded and made absolute) or the built-in default.
func (c *Handler) StagingRoot() (string, error) {
	value := c.Get(KeyStagingRoot)
	if value == "" {
		return DefaultStagingRoot, nil
	}

	expanded, err := expandTilde(value)
	if err != nil {
		return "", fmt.Errorf("(config) failed to expand %s: %w", KeyStagingRoot, err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("(config) failed to absolutize %s: %w", KeyStagingRoot, err)
	}

	return abs, nil
}

// PublishUser returns the account rimport expects to run as.
func (c *Handler) PublishUser() string {
	if value := c.Get(KeyPublishUser); value != "" {
		return value
	}

	return DefaultPublishUser
}

// SkipUserCheck reports whether the publish-user check is disabled.
func (c *Handler) SkipUserCheck() bool {
	return c.Get(KeySkipUserCheck) == "1"
}

func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}
