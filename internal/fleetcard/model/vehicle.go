package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied when the operator leaves a prompt empty.
const (
	DefaultColor    = "Blue"
	DefaultTireMin  = 30.0
	DefaultTireMax  = 38.0
	DefaultPhotoURL = "https://example.com/default_car.jpg"
)

// TirePosition identifies one wheel of a four-wheel vehicle.
type TirePosition string

const (
	FrontLeft  TirePosition = "front_left"
	FrontRight TirePosition = "front_right"
	RearLeft   TirePosition = "rear_left"
	RearRight  TirePosition = "rear_right"
)

// TirePositions lists the wheels in prompt and indicator order.
var TirePositions = []TirePosition{FrontLeft, FrontRight, RearLeft, RearRight}

// Title renders the position for humans: front_left -> "Front Left".
func (p TirePosition) Title() string {
	// A Caser keeps state between calls, so it is not shared.
	return cases.Title(language.English).String(strings.ReplaceAll(string(p), "_", " "))
}

// Vehicle is a fully validated vehicle record.
type Vehicle struct {
	Year         int
	Make         string
	Model        string
	VIN          string
	LicensePlate string
	Color        string

	TireMin float64
	TireMax float64

	FuelEntity     string
	TireEntities   map[TirePosition]string
	BatteryEntity  string
	IgnitionEntity string
	TroubleEntity  string
	OdometerEntity string

	PhotoURL string
}

// Seed holds the identity fields a catalog knows about a vehicle, plus the
// last readings it reported.
type Seed struct {
	Make         string  `yaml:"make"`
	Model        string  `yaml:"model"`
	Year         int     `yaml:"year"`
	LicensePlate string  `yaml:"license_plate"`
	TirePressure float64 `yaml:"tire_pressure"`
	FuelLevel    float64 `yaml:"fuel_level"`
}
