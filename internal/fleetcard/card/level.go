package card

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is a numeric trigger level embedded in a card. It remembers whether
// it was written as a whole number (15) or a decimal (30.0) so the emitted
// YAML and template expressions keep that form.
type Level struct {
	value   float64
	decimal bool
}

// IntLevel returns a whole-number level.
func IntLevel(n int) Level { return Level{value: float64(n)} }

// DecimalLevel returns a level that always renders with a decimal point.
func DecimalLevel(f float64) Level { return Level{value: f, decimal: true} }

// Float64 returns the numeric value.
func (l Level) Float64() float64 { return l.value }

// String renders the level the way it appears in template expressions:
// "15" for whole-number levels, "30.0" or "32.5" for decimal ones.
func (l Level) String() string {
	if !l.decimal {
		return strconv.FormatFloat(l.value, 'f', -1, 64)
	}
	s := strconv.FormatFloat(l.value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (l Level) MarshalYAML() (any, error) {
	tag := "!!int"
	if l.decimal {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: l.String()}, nil
}

func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: level must be a scalar", node.Line)
	}

	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return fmt.Errorf("line %d: level %q: %w", node.Line, node.Value, err)
	}

	*l = Level{
		value:   f,
		decimal: node.ShortTag() == "!!float" || strings.ContainsAny(node.Value, ".eE"),
	}
	return nil
}
