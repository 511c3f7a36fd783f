package options

import (
	"path/filepath"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"cloupeer.io/fleetcard/internal/fleetcard"
	"cloupeer.io/fleetcard/pkg/app"
	"cloupeer.io/fleetcard/pkg/log"
	"cloupeer.io/fleetcard/pkg/options"
)

type WizardOptions struct {
	OutputOptions  *options.OutputOptions  `json:"output" mapstructure:"output"`
	CatalogOptions *options.CatalogOptions `json:"catalog" mapstructure:"catalog"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	MetricsOptions *options.MetricsOptions `json:"metrics" mapstructure:"metrics"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*WizardOptions)(nil)

func NewWizardOptions() *WizardOptions {
	o := &WizardOptions{
		OutputOptions:  options.NewOutputOptions(),
		CatalogOptions: options.NewCatalogOptions(),
		S3Options:      options.NewS3Options(),
		MetricsOptions: options.NewMetricsOptions(),
		Log:            log.NewOptions(),
	}

	return o
}

func (o *WizardOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.OutputOptions.AddFlags(fss.FlagSet("output"))
	o.CatalogOptions.AddFlags(fss.FlagSet("catalog"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.MetricsOptions.AddFlags(fss.FlagSet("metrics"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *WizardOptions) Complete() error {
	o.OutputOptions.Dir = filepath.Clean(o.OutputOptions.Dir)
	if o.CatalogOptions.File != "" {
		o.CatalogOptions.File = filepath.Clean(o.CatalogOptions.File)
	}
	return nil
}

func (o *WizardOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.OutputOptions.Validate()...)
	errs = append(errs, o.CatalogOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.MetricsOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *WizardOptions) Config() (*fleetcard.Config, error) {
	return &fleetcard.Config{
		OutputOptions:  o.OutputOptions,
		CatalogOptions: o.CatalogOptions,
		S3Options:      o.S3Options,
	}, nil
}
