// Package card expands a validated vehicle into a vehicle-status-card
// document for the dashboard.
//
// Field names and literal values are consumed verbatim by the
// custom:vehicle-status-card frontend component; struct field order is the
// emitted key order.
package card

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

const (
	CardType      = "custom:vehicle-status-card"
	StatusEntity  = "sensor.vehicle_status"
	TireImage     = "/local/vehicle_images/tire_normal.jpg"
	TireLowImage  = "/local/vehicle_images/tire_low.jpg"
	RangeMax      = 100
	FuelThreshold = 15
)

// Document is one vehicle-status-card.
type Document struct {
	Type         string       `yaml:"type"`
	Name         string       `yaml:"name"`
	Entity       string       `yaml:"entity"`
	Image        string       `yaml:"image"`
	Make         string       `yaml:"make"`
	Model        string       `yaml:"model"`
	Year         int          `yaml:"year"`
	VIN          string       `yaml:"vin"`
	LicensePlate string       `yaml:"license_plate"`
	Color        string       `yaml:"color"`
	Indicators   []Indicator  `yaml:"indicators"`
	Actions      []Action     `yaml:"actions"`
	RangeInfo    RangeInfo    `yaml:"range_info"`
	CustomImages CustomImages `yaml:"custom_images"`
	VehicleInfo  VehicleInfo  `yaml:"vehicle_info"`
}

// Indicator is an alert badge driven by one sensor.
type Indicator struct {
	Icon          string `yaml:"icon"`
	Entity        string `yaml:"entity"`
	Threshold     Level  `yaml:"threshold"`
	StateIcon     string `yaml:"state_icon"`
	Title         string `yaml:"title"`
	Severity      string `yaml:"severity"`
	StateTemplate string `yaml:"state_template"`
	ColorTemplate string `yaml:"color_template"`
}

type Action struct {
	Name        string      `yaml:"name"`
	Icon        string      `yaml:"icon"`
	Service     string      `yaml:"service"`
	ServiceData ServiceData `yaml:"service_data"`
}

type ServiceData struct {
	EntityID string `yaml:"entity_id"`
}

type RangeInfo struct {
	FuelLevel RangeEntry `yaml:"fuel_level"`
	Battery   RangeEntry `yaml:"battery"`
}

// RangeEntry is a gauge bar fed by one sensor.
type RangeEntry struct {
	Current       string `yaml:"current"`
	Max           int    `yaml:"max"`
	ColorTemplate string `yaml:"color_template"`
}

type CustomImages struct {
	TireImage    string `yaml:"tire_image"`
	TireLowImage string `yaml:"tire_low_image"`
}

type VehicleInfo struct {
	VIN          string `yaml:"VIN"`
	LicensePlate string `yaml:"License Plate"`
	Color        string `yaml:"Color"`
}

// Build expands v into its card. It never fails for a validated vehicle and
// always returns the same document for the same input.
func Build(v model.Vehicle) Document {
	return Document{
		Type:         CardType,
		Name:         fmt.Sprintf("%d %s %s %s", v.Year, v.Make, v.Model, v.LicensePlate),
		Entity:       StatusEntity,
		Image:        v.PhotoURL,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		VIN:          v.VIN,
		LicensePlate: v.LicensePlate,
		Color:        v.Color,
		Indicators:   indicators(v),
		Actions: []Action{{
			Name:        "Toggle Lock",
			Icon:        "mdi:lock",
			Service:     "lock.toggle",
			ServiceData: ServiceData{EntityID: "lock." + slug(v) + "_door_locks"},
		}},
		RangeInfo: RangeInfo{
			FuelLevel: rangeEntry(v.FuelEntity),
			Battery:   rangeEntry(v.BatteryEntity),
		},
		CustomImages: CustomImages{
			TireImage:    TireImage,
			TireLowImage: TireLowImage,
		},
		VehicleInfo: VehicleInfo{
			VIN:          "VIN: " + v.VIN,
			LicensePlate: "License Plate: " + v.LicensePlate,
			Color:        v.Color,
		},
	}
}

// Filename is the card's file name: <year>_<make>_<model>_<plate>.yaml,
// lower-cased. Path separators are replaced so the card stays in the
// output directory.
func Filename(v model.Vehicle) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(slug(v)) + ".yaml"
}

// Marshal encodes doc as YAML with two-space indentation.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode card %q: %w", doc.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode card %q: %w", doc.Name, err)
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a card previously produced by Marshal.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode card: %w", err)
	}
	return doc, nil
}

func slug(v model.Vehicle) string {
	return fmt.Sprintf("%d_%s_%s_%s", v.Year, strings.ToLower(v.Make), strings.ToLower(v.Model), strings.ToLower(v.LicensePlate))
}
