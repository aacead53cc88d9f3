package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by generators and the quoting service.
// Rendering is deterministic, so none of these are worth retrying.
var (
	// ErrInvalidConfiguration is returned when a node asks for something the
	// database cannot express, such as a virtual generated column.
	ErrInvalidConfiguration = errors.New("pgddl/schema: invalid configuration")

	// ErrUnsupportedNode is returned when a generator has no rendering for a
	// node kind.
	ErrUnsupportedNode = errors.New("pgddl/schema: unsupported node")
)

// ConfigurationError describes an invalid node configuration.
// It wraps ErrInvalidConfiguration.
type ConfigurationError struct {
	Table  string
	Column string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Table != "" && e.Column != "":
		return fmt.Sprintf("invalid configuration for column %s.%s: %s", e.Table, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("invalid configuration for column %s: %s", e.Column, e.Reason)
	case e.Table != "":
		return fmt.Sprintf("invalid configuration for table %s: %s", e.Table, e.Reason)
	default:
		return "invalid configuration: " + e.Reason
	}
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// UnsupportedNodeError returns an error wrapping ErrUnsupportedNode for n.
func UnsupportedNodeError(generator string, n Node) error {
	return fmt.Errorf("%w: %s cannot render %T", ErrUnsupportedNode, generator, n)
}

// IsInvalidConfigurationErr returns true if err is or wraps ErrInvalidConfiguration.
func IsInvalidConfigurationErr(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsUnsupportedNodeErr returns true if err is or wraps ErrUnsupportedNode.
func IsUnsupportedNodeErr(err error) bool {
	return errors.Is(err, ErrUnsupportedNode)
}
