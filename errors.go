package pgddl

import "github.com/pthm/pgddl/pkg/schema"

// Sentinel errors. Rendering is deterministic, so an error returned for a
// node is returned again on every retry; fix the node instead.
//
// Use the Is*Err helper functions to check for specific errors.
var (
	// ErrInvalidConfiguration is returned when a node requests something
	// PostgreSQL cannot express: a virtual generated column, an unknown
	// foreign key action, an integer byte size with no matching type, a
	// default value with no SQL form.
	ErrInvalidConfiguration = schema.ErrInvalidConfiguration

	// ErrUnsupportedNode is returned for nodes the generator cannot render.
	ErrUnsupportedNode = schema.ErrUnsupportedNode
)

// ConfigurationError carries the table and column an invalid configuration
// was found on. It wraps ErrInvalidConfiguration.
type ConfigurationError = schema.ConfigurationError

// IsInvalidConfigurationErr returns true if err is or wraps ErrInvalidConfiguration.
func IsInvalidConfigurationErr(err error) bool {
	return schema.IsInvalidConfigurationErr(err)
}

// IsUnsupportedNodeErr returns true if err is or wraps ErrUnsupportedNode.
func IsUnsupportedNodeErr(err error) bool {
	return schema.IsUnsupportedNodeErr(err)
}
