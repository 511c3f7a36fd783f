package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	CardsWritten.Inc()
	ValidationFailures.WithLabelValues("vin").Inc()

	path := filepath.Join(t.TempDir(), "fleetcard.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fleetcard_cards_written_total")
	assert.Contains(t, string(data), `fleetcard_validation_failures_total{field="vin"}`)
}
