package migration

import (
	"net/url"
	"time"
)

const (
	defaultWorkers = 4
	defaultTimeout = 10 * time.Second
)

// Config carries the validated knobs of one import run.
type Config struct {
	SourceBaseURL      string
	DestinationBaseURL string
	UploadPath         string
	PostsPath          string

	Workers int
	Timeout time.Duration
	DryRun  bool
}

// Validate fails fast with a ConfigError on the first missing or malformed
// required setting.
func (c Config) Validate() error {
	if c.SourceBaseURL == "" {
		return &ConfigError{Field: "source-base", Reason: "source base URL is required"}
	}
	if _, err := url.ParseRequestURI(c.SourceBaseURL); err != nil {
		return &ConfigError{Field: "source-base", Reason: err.Error()}
	}
	if c.DestinationBaseURL == "" {
		return &ConfigError{Field: "dest-base", Reason: "destination base URL is required"}
	}
	if _, err := url.ParseRequestURI(c.DestinationBaseURL); err != nil {
		return &ConfigError{Field: "dest-base", Reason: err.Error()}
	}
	if c.UploadPath == "" {
		return &ConfigError{Field: "upload-path", Reason: "upload path is required"}
	}
	if c.PostsPath == "" {
		return &ConfigError{Field: "posts-path", Reason: "posts path is required"}
	}

	return nil
}
