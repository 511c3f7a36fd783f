package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

func impreza() model.Vehicle {
	return model.Vehicle{
		Year:         2024,
		Make:         "Subaru",
		Model:        "Impreza",
		VIN:          "JF1GPAA61E8212345",
		LicensePlate: "XYZ-123",
		Color:        model.DefaultColor,
		TireMin:      model.DefaultTireMin,
		TireMax:      model.DefaultTireMax,
		FuelEntity:   "sensor.impreza_fuel_level",
		TireEntities: map[model.TirePosition]string{
			model.FrontLeft:  "sensor.impreza_tire_fl",
			model.FrontRight: "sensor.impreza_tire_fr",
			model.RearLeft:   "sensor.impreza_tire_rl",
			model.RearRight:  "sensor.impreza_tire_rr",
		},
		BatteryEntity:  "sensor.impreza_battery",
		IgnitionEntity: "binary_sensor.impreza_ignition",
		TroubleEntity:  "binary_sensor.impreza_trouble",
		OdometerEntity: "sensor.impreza_odometer",
		PhotoURL:       model.DefaultPhotoURL,
	}
}

func TestBuildIdentity(t *testing.T) {
	doc := Build(impreza())

	assert.Equal(t, "custom:vehicle-status-card", doc.Type)
	assert.Equal(t, "2024 Subaru Impreza XYZ-123", doc.Name)
	assert.Equal(t, "sensor.vehicle_status", doc.Entity)
	assert.Equal(t, "https://example.com/default_car.jpg", doc.Image)
	assert.Equal(t, 2024, doc.Year)
	assert.Equal(t, "Blue", doc.Color)

	require.Len(t, doc.Actions, 1)
	assert.Equal(t, "Toggle Lock", doc.Actions[0].Name)
	assert.Equal(t, "lock.toggle", doc.Actions[0].Service)
	assert.Equal(t, "lock.2024_subaru_impreza_xyz-123_door_locks", doc.Actions[0].ServiceData.EntityID)

	assert.Equal(t, VehicleInfo{
		VIN:          "VIN: JF1GPAA61E8212345",
		LicensePlate: "License Plate: XYZ-123",
		Color:        "Blue",
	}, doc.VehicleInfo)
	assert.Equal(t, "/local/vehicle_images/tire_normal.jpg", doc.CustomImages.TireImage)
	assert.Equal(t, "/local/vehicle_images/tire_low.jpg", doc.CustomImages.TireLowImage)
}

func TestBuildIndicators(t *testing.T) {
	doc := Build(impreza())
	require.Len(t, doc.Indicators, 5)

	fuel := doc.Indicators[0]
	assert.Equal(t, Indicator{
		Icon:          "mdi:fuel",
		Entity:        "sensor.impreza_fuel_level",
		Threshold:     IntLevel(15),
		StateIcon:     "mdi:fuel-empty",
		Title:         "Low Fuel",
		Severity:      "medium",
		StateTemplate: "{{ 'LOW' if states('sensor.impreza_fuel_level') < 15 else 'NORMAL' }}",
		ColorTemplate: "{{ 'yellow' if states('sensor.impreza_fuel_level') < 15 else 'green' }}",
	}, fuel)

	wantTires := []struct {
		entity string
		title  string
	}{
		{"sensor.impreza_tire_fl", "Low Tire Pressure Front Left"},
		{"sensor.impreza_tire_fr", "Low Tire Pressure Front Right"},
		{"sensor.impreza_tire_rl", "Low Tire Pressure Rear Left"},
		{"sensor.impreza_tire_rr", "Low Tire Pressure Rear Right"},
	}
	for i, want := range wantTires {
		got := doc.Indicators[i+1]
		assert.Equal(t, "mdi:tire", got.Icon)
		assert.Equal(t, "mdi:tire-alert", got.StateIcon)
		assert.Equal(t, "high", got.Severity)
		assert.Equal(t, want.entity, got.Entity)
		assert.Equal(t, want.title, got.Title)
		assert.Equal(t, DecimalLevel(30), got.Threshold)
		assert.Equal(t, "{{ 'LOW' if states('"+want.entity+"') < 30.0 else 'NORMAL' }}", got.StateTemplate)
		assert.Equal(t, "{{ 'red' if states('"+want.entity+"') < 30.0 else 'green' }}", got.ColorTemplate)
	}
}

func TestBuildRangeInfo(t *testing.T) {
	doc := Build(impreza())

	assert.Equal(t, RangeEntry{
		Current:       "{{ states('sensor.impreza_fuel_level') }}",
		Max:           100,
		ColorTemplate: "{{ 'green' if states('sensor.impreza_fuel_level') > 50 else 'yellow' if states('sensor.impreza_fuel_level') > 20 else 'red' }}",
	}, doc.RangeInfo.FuelLevel)
	assert.Equal(t, "{{ states('sensor.impreza_battery') }}", doc.RangeInfo.Battery.Current)
	assert.Equal(t, 100, doc.RangeInfo.Battery.Max)
}

func TestBuildFractionalTireMin(t *testing.T) {
	v := impreza()
	v.TireMin = 32.5

	doc := Build(v)
	assert.Equal(t, "{{ 'LOW' if states('sensor.impreza_tire_fl') < 32.5 else 'NORMAL' }}", doc.Indicators[1].StateTemplate)
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(Build(impreza()))
	require.NoError(t, err)

	second, err := Marshal(Build(impreza()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshalKeyOrder(t *testing.T) {
	out, err := Marshal(Build(impreza()))
	require.NoError(t, err)

	// Top-level keys are the only lines without leading indentation.
	var keys []string
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" || line[0] == ' ' || line[0] == '-' {
			continue
		}
		key, _, _ := strings.Cut(line, ":")
		keys = append(keys, key)
	}

	assert.Equal(t, []string{
		"type", "name", "entity", "image", "make", "model", "year", "vin",
		"license_plate", "color", "indicators", "actions", "range_info",
		"custom_images", "vehicle_info",
	}, keys)
	assert.Contains(t, string(out), "threshold: 30.0\n")
	assert.Contains(t, string(out), "threshold: 15\n")
}

func TestMarshalRoundTrip(t *testing.T) {
	doc := Build(impreza())

	out, err := Marshal(doc)
	require.NoError(t, err)

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "2024_subaru_impreza_xyz-123.yaml", Filename(impreza()))

	v := impreza()
	v.Make = "Land Rover"
	v.Model = "Defender 110/130"
	assert.Equal(t, "2024_land rover_defender 110-130_xyz-123.yaml", Filename(v))
}
