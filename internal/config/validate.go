package config

import (
	"fmt"
	"time"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural errors. It returns all
// validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err != nil {
			errs = append(errs, ValidationError{
				Field:   "timeout",
				Message: fmt.Sprintf("invalid duration %q", cfg.Timeout),
			})
		} else if d <= 0 {
			errs = append(errs, ValidationError{
				Field:   "timeout",
				Message: "must be positive",
			})
		}
	}

	for name, sc := range cfg.Scanners {
		if name == "" {
			errs = append(errs, ValidationError{
				Field:   "scanners",
				Message: "scanner name must not be empty",
			})
		}
		for i, arg := range sc.ExtraArgs {
			if arg == "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("scanners.%s.extra_args[%d]", name, i),
					Message: "must not be empty",
				})
			}
		}
	}

	return errs
}
