package card

import (
	"fmt"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

// Template expressions evaluated by the dashboard against live sensor states.
const (
	stateTemplate = "{{ 'LOW' if states('%s') < %s else 'NORMAL' }}"
	alertTemplate = "{{ '%s' if states('%s') < %s else 'green' }}"
	rangeCurrent  = "{{ states('%s') }}"
	rangeColor    = "{{ 'green' if states('%[1]s') > 50 else 'yellow' if states('%[1]s') > 20 else 'red' }}"
)

// indicatorKind holds the literals that differ between indicator kinds.
type indicatorKind struct {
	icon       string
	stateIcon  string
	title      string
	severity   string
	alertColor string
}

var (
	fuelKind = indicatorKind{
		icon:       "mdi:fuel",
		stateIcon:  "mdi:fuel-empty",
		title:      "Low Fuel",
		severity:   "medium",
		alertColor: "yellow",
	}
	tireKind = indicatorKind{
		icon:       "mdi:tire",
		stateIcon:  "mdi:tire-alert",
		title:      "Low Tire Pressure",
		severity:   "high",
		alertColor: "red",
	}
)

// indicators returns the fuel indicator followed by one tire indicator per
// position in model.TirePositions order.
func indicators(v model.Vehicle) []Indicator {
	out := make([]Indicator, 0, 1+len(model.TirePositions))
	out = append(out, fuelKind.indicator(v.FuelEntity, "", IntLevel(FuelThreshold)))

	low := DecimalLevel(v.TireMin)
	for _, pos := range model.TirePositions {
		out = append(out, tireKind.indicator(v.TireEntities[pos], pos.Title(), low))
	}

	return out
}

func (s indicatorKind) indicator(entity, subtitle string, threshold Level) Indicator {
	title := s.title
	if subtitle != "" {
		title += " " + subtitle
	}

	return Indicator{
		Icon:          s.icon,
		Entity:        entity,
		Threshold:     threshold,
		StateIcon:     s.stateIcon,
		Title:         title,
		Severity:      s.severity,
		StateTemplate: fmt.Sprintf(stateTemplate, entity, threshold),
		ColorTemplate: fmt.Sprintf(alertTemplate, s.alertColor, entity, threshold),
	}
}

func rangeEntry(entity string) RangeEntry {
	return RangeEntry{
		Current:       fmt.Sprintf(rangeCurrent, entity),
		Max:           RangeMax,
		ColorTemplate: fmt.Sprintf(rangeColor, entity),
	}
}
