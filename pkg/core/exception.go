package core

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExceptionKind tags a test case with the browser interaction exception it
// exercises. It is presentational: nothing branches on it at runtime.
type ExceptionKind int

const (
	ExceptionNone                   ExceptionKind = iota // Plain functional case
	ExceptionElementNotFound                             // Locator matched nothing
	ExceptionElementNotInteractable                      // Element present but hidden or covered
	ExceptionInvalidElementState                         // Element disabled or read-only
	ExceptionStaleElementReference                       // Element detached from the DOM
	ExceptionTimeout                                     // Explicit wait expired
)

// ErrUnknownExceptionKind is returned when parsing an unrecognised tag.
var ErrUnknownExceptionKind = errors.New("unknown exception kind")

var exceptionNames = map[ExceptionKind]string{
	ExceptionNone:                   "none",
	ExceptionElementNotFound:        "element_not_found",
	ExceptionElementNotInteractable: "element_not_interactable",
	ExceptionInvalidElementState:    "invalid_element_state",
	ExceptionStaleElementReference:  "stale_element_reference",
	ExceptionTimeout:                "timeout",
}

var exceptionDisplay = map[ExceptionKind]string{
	ExceptionNone:                   "",
	ExceptionElementNotFound:        "NoSuchElementException",
	ExceptionElementNotInteractable: "ElementNotInteractableException",
	ExceptionInvalidElementState:    "InvalidElementStateException",
	ExceptionStaleElementReference:  "StaleElementReferenceException",
	ExceptionTimeout:                "TimeoutException",
}

// String returns the machine-readable code, e.g. "stale_element_reference".
func (k ExceptionKind) String() string {
	if s, ok := exceptionNames[k]; ok {
		return s
	}
	return "unknown"
}

// DisplayName returns the exception class name shown in reports.
// Empty for ExceptionNone.
func (k ExceptionKind) DisplayName() string {
	return exceptionDisplay[k]
}

// IsNone reports whether the case does not target an exception.
func (k ExceptionKind) IsNone() bool {
	return k == ExceptionNone
}

// ParseExceptionKind accepts either the code ("timeout") or the display
// name ("TimeoutException"), case-insensitively. Empty input is ExceptionNone.
func ParseExceptionKind(s string) (ExceptionKind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExceptionNone, nil
	}
	for k, name := range exceptionNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	for k, name := range exceptionDisplay {
		if name != "" && strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return ExceptionNone, fmt.Errorf("%w: %q", ErrUnknownExceptionKind, s)
}

// MarshalYAML implements yaml.Marshaler.
func (k ExceptionKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *ExceptionKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseExceptionKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}
