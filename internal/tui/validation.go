package tui

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidOption = errors.New("value is not one of the allowed options")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateCommand checks an indexer command line. Empty selects the
// default command; otherwise the executable must not be a flag.
func ValidateCommand(s string) error {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	if strings.HasPrefix(fields[0], "-") {
		return fmt.Errorf("command must start with an executable, not %q", fields[0])
	}
	return nil
}

// ValidatePrefix checks the channel tree prefix
func ValidatePrefix(s string) error {
	if err := ValidateRequired(s); err != nil {
		return err
	}
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("prefix must be a single line")
	}
	return nil
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	return validateOption(s, "debug", "info", "warn", "error")
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	return validateOption(s, "pretty", "json")
}

func validateOption(s string, allowed ...string) error {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: must be one of %s", ErrInvalidOption, strings.Join(allowed, ", "))
}
