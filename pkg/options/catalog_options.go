package options

import (
	"errors"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CatalogOptions)(nil)

// CatalogOptions selects the vehicle catalog used to pre-fill the wizard.
type CatalogOptions struct {
	// File is a YAML vehicle inventory. Empty means the built-in catalog.
	File string `json:"file" mapstructure:"file"`

	// Seed is the catalog id whose identity fields become the defaults of the
	// first vehicle's prompts. Empty disables seeding.
	Seed string `json:"seed" mapstructure:"seed"`

	// Watch reloads File whenever it changes on disk.
	Watch bool `json:"watch" mapstructure:"watch"`
}

func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{}
}

func (o *CatalogOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}
	if o.Watch && o.File == "" {
		errs = append(errs, errors.New("--catalog.watch requires --catalog.file"))
	}

	return errs
}

func (o *CatalogOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.File, "catalog.file", o.File, "YAML vehicle inventory file. Defaults to the built-in catalog.")
	fs.StringVar(&o.Seed, "catalog.seed", o.Seed, "Catalog vehicle id used to pre-fill year, make, model and license plate.")
	fs.BoolVar(&o.Watch, "catalog.watch", o.Watch, "Reload --catalog.file when it changes.")
}
