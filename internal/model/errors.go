package model

import (
	"fmt"
	"strings"
)

// InvalidSexError is returned when the requested sex is not available
type InvalidSexError struct {
	Given     string
	Available []string
}

func (e *InvalidSexError) Error() string {
	return fmt.Sprintf("invalid sex %q: available options are [%s]", e.Given, strings.Join(e.Available, ", "))
}

// InvalidCountryError is returned when the requested country is not in the dataset
type InvalidCountryError struct {
	Given     string
	Available []string
	// Suggestion is the closest known country code, if any is close enough
	Suggestion string
}

func (e *InvalidCountryError) Error() string {
	msg := fmt.Sprintf("invalid country %q: available countries are [%s]", e.Given, strings.Join(e.Available, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}
