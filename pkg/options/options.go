package options

import "github.com/spf13/pflag"

// IOptions is implemented by every per-concern options struct.
type IOptions interface {
	// Validate reports every problem found, not just the first.
	Validate() []error

	// AddFlags registers the options' flags on fs.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}
