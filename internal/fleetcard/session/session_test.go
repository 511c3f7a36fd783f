package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloupeer.io/fleetcard/internal/fleetcard/card"
	"cloupeer.io/fleetcard/internal/fleetcard/model"
	"cloupeer.io/fleetcard/internal/fleetcard/store"
	"cloupeer.io/fleetcard/internal/pkg/metrics"
)

// script answers prompts from a fixed list and records every question.
type script struct {
	answers []string
	asked   []string
}

func (s *script) Prompt(_ context.Context, question string) (string, error) {
	s.asked = append(s.asked, question)
	if len(s.answers) == 0 {
		return "", ErrInputClosed
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "s3://fleet-cards/cards/" + key, nil
}

func (f *fakeUploader) CheckBucket(context.Context) error { return nil }

// imprezaAnswers fills every vehicle prompt, taking the defaults for color,
// tire pressure and photo.
func imprezaAnswers() []string {
	return []string{
		"2024", "Subaru", "Impreza", "jf1gpaa61f8200000", "abc-1234",
		"", "", "",
		"sensor.fuel_level",
		"sensor.tire_fl", "sensor.tire_fr", "sensor.tire_rl", "sensor.tire_rr",
		"sensor.battery_level",
		"binary_sensor.ignition", "binary_sensor.trouble", "sensor.odometer",
		"",
	}
}

func answers(parts ...[]string) []string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

func newTestSession(t *testing.T, fs afero.Fs, answers []string, opts ...Option) (*Session, *script, *bytes.Buffer) {
	t.Helper()
	p := &script{answers: answers}
	out := &bytes.Buffer{}
	return New(p, out, store.NewFileStore(fs, "cards"), opts...), p, out
}

func TestRunSingleVehicle(t *testing.T) {
	fs := afero.NewMemMapFs()
	before := testutil.ToFloat64(metrics.CardsWritten)

	s, p, out := newTestSession(t, fs, answers(imprezaAnswers(), []string{"n", "n"}))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, StateDone, s.State())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CardsWritten))
	assert.Empty(t, p.answers)

	data, err := afero.ReadFile(fs, "cards/2024_subaru_impreza_abc-1234.yaml")
	require.NoError(t, err)

	doc, err := card.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "2024 Subaru Impreza ABC-1234", doc.Name)
	assert.Equal(t, "JF1GPAA61F8200000", doc.VIN)
	assert.Equal(t, model.DefaultColor, doc.Color)
	assert.Equal(t, model.DefaultPhotoURL, doc.Image)
	require.Len(t, doc.Indicators, 5)
	assert.Equal(t, "sensor.tire_rr", doc.Indicators[4].Entity)
	assert.Equal(t, "30.0", doc.Indicators[1].Threshold.String())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome to the Fleet Card Generator Wizard!\n"))
	assert.Contains(t, text, "\nEntering details for a new vehicle:\n")
	assert.Contains(t, text,
		"\nYAML configuration for 2024 Subaru Impreza (ABC-1234) has been saved to 'cards/2024_subaru_impreza_abc-1234.yaml'.\n")
	assert.Contains(t, text, "Wizard completed. All vehicle configurations have been generated.\n")
	assert.NotContains(t, text, "--- End of")
}

func TestPromptOrder(t *testing.T) {
	s, p, _ := newTestSession(t, afero.NewMemMapFs(), answers(imprezaAnswers(), []string{"n", "n"}))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{
		"Enter vehicle year (e.g., 2024): ",
		"Enter vehicle make (e.g., Subaru): ",
		"Enter vehicle model (e.g., Impreza): ",
		"Enter VIN: ",
		"Enter license plate: ",
		"Enter car color (e.g., Blue): ",
		"Enter minimum tire pressure (e.g., 30): ",
		"Enter maximum tire pressure (e.g., 38): ",
		"Enter fuel level sensor entity (e.g., sensor.vehicle_fuel_level): ",
		"Enter tire pressure sensor entity for Front Left: ",
		"Enter tire pressure sensor entity for Front Right: ",
		"Enter tire pressure sensor entity for Rear Left: ",
		"Enter tire pressure sensor entity for Rear Right: ",
		"Enter battery level sensor entity (e.g., sensor.vehicle_battery_level): ",
		"Enter ignition sensor entity (e.g., binary_sensor.vehicle_ignition): ",
		"Enter trouble sensor entity (e.g., binary_sensor.vehicle_trouble): ",
		"Enter odometer sensor entity (e.g., sensor.vehicle_odometer): ",
		"Enter photo URL for the vehicle image: ",
		"Do you want to review the generated YAML? (y/n): ",
		"Do you want to add another vehicle? (y/n): ",
	}, p.asked)
}

func TestInvalidInputIsReprompted(t *testing.T) {
	yearBefore := testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("year"))
	vinBefore := testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("vin"))

	in := imprezaAnswers()
	in = append([]string{"24", "1700"}, in...)
	// VIN answer is now at index 5; reject it once.
	in = append(in[:5], append([]string{"SHORT"}, in[5:]...)...)

	s, p, out := newTestSession(t, afero.NewMemMapFs(), answers(in, []string{"n", "n"}))
	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid input: Year must be a 4-digit number. Please try again.\n")
	assert.Contains(t, text, "Invalid input: Year must be between 1886 and 2100. Please try again.\n")
	assert.Contains(t, text, "Invalid input: VIN must be exactly 17 characters long. Please try again.\n")

	assert.Equal(t, "Enter vehicle year (e.g., 2024): ", p.asked[0])
	assert.Equal(t, p.asked[0], p.asked[1])
	assert.Equal(t, p.asked[0], p.asked[2])
	assert.Equal(t, "Enter VIN: ", p.asked[5])
	assert.Equal(t, "Enter VIN: ", p.asked[6])

	assert.Equal(t, yearBefore+2, testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("year")))
	assert.Equal(t, vinBefore+1, testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("vin")))
}

func TestReviewEchoesCard(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _, out := newTestSession(t, fs, answers(imprezaAnswers(), []string{" Y ", "n"}))
	require.NoError(t, s.Run(context.Background()))

	data, err := afero.ReadFile(fs, "cards/2024_subaru_impreza_abc-1234.yaml")
	require.NoError(t, err)

	want := "\n--- cards/2024_subaru_impreza_abc-1234.yaml ---\n" + string(data) +
		"\n--- End of cards/2024_subaru_impreza_abc-1234.yaml ---\n\n"
	assert.Contains(t, out.String(), want)
}

func TestSeveralVehicles(t *testing.T) {
	second := imprezaAnswers()
	second[0], second[2], second[4] = "2019", "Outback", "xyz-9"

	fs := afero.NewMemMapFs()
	s, _, out := newTestSession(t, fs, answers(imprezaAnswers(), []string{"n", "y"}, second, []string{"no", "nope"}))
	require.NoError(t, s.Run(context.Background()))

	written := s.Written()
	require.Len(t, written, 2)
	assert.Equal(t, "2024_subaru_impreza_abc-1234.yaml", written[0].Name)
	assert.Equal(t, "2019_subaru_outback_xyz-9.yaml", written[1].Name)

	for _, w := range written {
		ok, err := afero.Exists(fs, w.Path)
		require.NoError(t, err)
		assert.True(t, ok, w.Path)
	}

	// Summary table lists both cards.
	summary := out.String()[strings.Index(out.String(), "Wizard completed."):]
	assert.Contains(t, summary, "YEAR")
	assert.Contains(t, summary, "Impreza")
	assert.Contains(t, summary, "XYZ-9")
}

func TestWriteFailureIsFatal(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s, p, out := newTestSession(t, fs, answers(imprezaAnswers(), []string{"n", "n"}))

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
	assert.NotContains(t, out.String(), "has been saved")
	// Nothing is asked after the failed write.
	assert.Len(t, p.answers, 2)
}

func TestInputClosed(t *testing.T) {
	s, _, _ := newTestSession(t, afero.NewMemMapFs(), []string{"2024", "Subaru"})

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, StateCollecting, s.State())
}

func TestSeedDefaultsFirstVehicleOnly(t *testing.T) {
	seed := model.Seed{Make: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "abc-1234"}

	first := imprezaAnswers()
	first[0], first[1], first[2], first[4] = "", "", "", ""

	fs := afero.NewMemMapFs()
	s, p, _ := newTestSession(t, fs, answers(first, []string{"n", "y"}, imprezaAnswers(), []string{"n", "n"}), WithSeed(seed))
	require.NoError(t, s.Run(context.Background()))

	require.Len(t, s.Written(), 2)
	v := s.Written()[0].Vehicle
	assert.Equal(t, 2020, v.Year)
	assert.Equal(t, "Toyota", v.Make)
	assert.Equal(t, "Camry", v.Model)
	assert.Equal(t, "ABC-1234", v.LicensePlate)

	assert.Equal(t, "Enter vehicle year (e.g., 2024) [2020]: ", p.asked[0])
	assert.Equal(t, "Enter vehicle make (e.g., Subaru) [Toyota]: ", p.asked[1])
	assert.Equal(t, "Enter license plate [ABC-1234]: ", p.asked[4])

	// Second vehicle: plain prompts again.
	assert.Contains(t, p.asked[20:], "Enter vehicle year (e.g., 2024): ")
	assert.NotContains(t, p.asked[20:], "Enter vehicle year (e.g., 2024) [2020]: ")
}

func TestInvalidSeedValuesAreNotOffered(t *testing.T) {
	d := seedDefaults(&model.Seed{Make: "  ", Year: 1700, LicensePlate: "x"})
	assert.Nil(t, d.year)
	assert.Nil(t, d.make)
	assert.Nil(t, d.model)
	require.NotNil(t, d.plate)
	assert.Equal(t, "X", *d.plate)
}

func TestUpload(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.Uploads.WithLabelValues("success"))
	up := &fakeUploader{}

	s, _, out := newTestSession(t, afero.NewMemMapFs(), answers(imprezaAnswers(), []string{"n", "n"}), WithUploader(up))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"2024_subaru_impreza_abc-1234.yaml"}, up.keys)
	assert.Equal(t, "s3://fleet-cards/cards/2024_subaru_impreza_abc-1234.yaml", s.Written()[0].Location)
	assert.Contains(t, out.String(), "Uploaded '2024_subaru_impreza_abc-1234.yaml' to s3://fleet-cards/cards/")
	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.Uploads.WithLabelValues("success")))
}

func TestUploadFailureIsNotFatal(t *testing.T) {
	failedBefore := testutil.ToFloat64(metrics.Uploads.WithLabelValues("failed"))
	up := &fakeUploader{err: errors.New("connection refused")}

	fs := afero.NewMemMapFs()
	s, _, out := newTestSession(t, fs, answers(imprezaAnswers(), []string{"n", "n"}), WithUploader(up))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, StateDone, s.State())
	assert.Empty(t, s.Written()[0].Location)
	assert.Contains(t, out.String(), "Warning: could not upload '2024_subaru_impreza_abc-1234.yaml': connection refused")
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.Uploads.WithLabelValues("failed")))

	ok, err := afero.Exists(fs, "cards/2024_subaru_impreza_abc-1234.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
}
