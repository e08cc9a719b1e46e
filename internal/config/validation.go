package config

import (
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns the first problem
// found, wrapped around the matching sentinel error.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	parsed, err := url.Parse(c.ServerURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidServerURL, c.ServerURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not supported", ErrInvalidServerURL, parsed.Scheme)
	}

	if c.ItemsPerPage < 1 || c.ItemsPerPage > MaxItemsPerPage {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidItemsPerPage, c.ItemsPerPage, MaxItemsPerPage)
	}
	if c.PagesPerBatch < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidPagesPerBatch, c.PagesPerBatch)
	}
	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 600 {
		return fmt.Errorf("%w: %ds (must be 1..600)", ErrInvalidTimeout, c.TimeoutSeconds)
	}
	if c.DebounceMillis < 0 || c.DebounceMillis > 10000 {
		return fmt.Errorf("%w: %dms (must be 0..10000)", ErrInvalidDebounce, c.DebounceMillis)
	}
	return nil
}
