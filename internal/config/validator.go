package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "autosave.idle_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateCreate()...)
	errors = append(errors, c.validateAutosave()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	// All paths are optional; when set they just need to be plausible.
	const maxPathLength = 4096
	check := func(field, path string) {
		if path == "" {
			return
		}
		if strings.ContainsRune(path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   path,
				Message: "path contains invalid null character",
			})
		}
		if len(path) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   path,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}
	check("paths.document_root", c.Paths.DocumentRoot)
	check("paths.log_dir", c.Paths.LogDir)
	check("paths.prefs_file", c.Paths.PrefsFile)

	return errors
}

// validateCreate validates the CreateConfig
func (c *Config) validateCreate() []ValidationError {
	var errors []ValidationError

	// Zero disables throttling entirely, which makes double-fired shortcuts
	// create two notes; keep a small floor instead.
	const minMinInterval = 50    // 50ms
	const maxMinInterval = 60000 // 1 minute

	if c.Create.MinIntervalMs < minMinInterval {
		errors = append(errors, ValidationError{
			Field:   "create.min_interval_ms",
			Value:   c.Create.MinIntervalMs,
			Message: fmt.Sprintf("must be at least %dms", minMinInterval),
		})
	}
	if c.Create.MinIntervalMs > maxMinInterval {
		errors = append(errors, ValidationError{
			Field:   "create.min_interval_ms",
			Value:   c.Create.MinIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxMinInterval),
		})
	}

	return errors
}

// validateAutosave validates the AutosaveConfig
func (c *Config) validateAutosave() []ValidationError {
	var errors []ValidationError

	const minIdleSeconds = 1
	const maxIdleSeconds = 3600

	if c.Autosave.IdleSeconds < minIdleSeconds {
		errors = append(errors, ValidationError{
			Field:   "autosave.idle_seconds",
			Value:   c.Autosave.IdleSeconds,
			Message: fmt.Sprintf("must be at least %d", minIdleSeconds),
		})
	}
	if c.Autosave.IdleSeconds > maxIdleSeconds {
		errors = append(errors, ValidationError{
			Field:   "autosave.idle_seconds",
			Value:   c.Autosave.IdleSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d", maxIdleSeconds),
		})
	}

	const minTick = 10   // 10ms
	const maxTick = 5000 // 5 seconds

	if c.Autosave.TickMs < minTick {
		errors = append(errors, ValidationError{
			Field:   "autosave.tick_ms",
			Value:   c.Autosave.TickMs,
			Message: fmt.Sprintf("must be at least %dms", minTick),
		})
	}
	if c.Autosave.TickMs > maxTick {
		errors = append(errors, ValidationError{
			Field:   "autosave.tick_ms",
			Value:   c.Autosave.TickMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxTick),
		})
	}

	// The worker cannot honor an idle threshold shorter than its own tick.
	if c.Autosave.TickMs > c.Autosave.IdleSeconds*1000 {
		errors = append(errors, ValidationError{
			Field:   "autosave.tick_ms",
			Value:   c.Autosave.TickMs,
			Message: fmt.Sprintf("must not exceed idle_seconds (%ds)", c.Autosave.IdleSeconds),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
