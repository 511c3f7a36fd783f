package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every fleetcard metric. It is private to the process so the
// textfile dump contains only wizard metrics.
var Registry = prometheus.NewRegistry()

var (
	// CardsWritten counts card files persisted to the output directory.
	CardsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcard_cards_written_total",
			Help: "Total number of vehicle status cards written.",
		},
	)

	// ValidationFailures counts rejected prompt answers.
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcard_validation_failures_total",
			Help: "Total number of operator answers rejected by a field validator.",
		},
		[]string{"field"}, // field: year, vin, fuel_entity, ...
	)

	// Uploads counts card uploads to object storage.
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcard_uploads_total",
			Help: "Total number of card uploads to object storage.",
		},
		[]string{"status"}, // status: success/failed
	)
)

func init() {
	Registry.MustRegister(CardsWritten)
	Registry.MustRegister(ValidationFailures)
	Registry.MustRegister(Uploads)
}

// WriteTextfile dumps the registry in Prometheus text format to path.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
