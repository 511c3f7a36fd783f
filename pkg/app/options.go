package app

import (
	cliflag "k8s.io/component-base/cli/flag"
)

// NamedFlagSetOptions is implemented by a command's aggregate options.
type NamedFlagSetOptions interface {
	// Flags returns the command's flags grouped by section.
	Flags() cliflag.NamedFlagSets

	// Complete fills in fields derived from the ones that were set.
	Complete() error

	// Validate checks the completed options.
	Validate() error
}
