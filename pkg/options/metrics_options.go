package options

import (
	"github.com/spf13/pflag"
)

var _ IOptions = (*MetricsOptions)(nil)

// MetricsOptions controls the session metrics dump.
type MetricsOptions struct {
	// Textfile, when set, receives the metrics in Prometheus text format on
	// exit so a node-exporter textfile collector can pick them up.
	Textfile string `json:"textfile" mapstructure:"textfile"`
}

func NewMetricsOptions() *MetricsOptions {
	return &MetricsOptions{}
}

func (o *MetricsOptions) Validate() []error {
	return nil
}

func (o *MetricsOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Textfile, "metrics.textfile", o.Textfile, "Write session metrics in Prometheus text format to this file on exit.")
}
