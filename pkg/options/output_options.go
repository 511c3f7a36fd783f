package options

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
)

var _ IOptions = (*OutputOptions)(nil)

// OutputOptions controls where generated cards are written.
type OutputOptions struct {
	// Dir is the directory receiving one YAML file per vehicle.
	Dir string `json:"dir" mapstructure:"dir"`
}

func NewOutputOptions() *OutputOptions {
	return &OutputOptions{
		Dir: ".",
	}
}

func (o *OutputOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}
	if strings.TrimSpace(o.Dir) == "" {
		errs = append(errs, errors.New("--output.dir must not be empty"))
	}

	return errs
}

func (o *OutputOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Dir, "output.dir", o.Dir, "Directory the generated card YAML files are written to.")
}
