package steps

import (
	"fmt"
)

const metersPerMile = 1609.34

type DistanceUnit string

const (
	Kilometers DistanceUnit = "km"
	Miles      DistanceUnit = "miles"
)

func (u DistanceUnit) IsValid() bool {
	return u == Kilometers || u == Miles
}

func (u DistanceUnit) Title() string {
	switch u {
	case Miles:
		return "Miles (mi)"
	default:
		return "Kilometers (km)"
	}
}

// Format renders a distance given in meters in this unit, e.g. "4.20 km".
func (u DistanceUnit) Format(meters float64) string {
	switch u {
	case Miles:
		return fmt.Sprintf("%.2f mi", meters/metersPerMile)
	default:
		return fmt.Sprintf("%.2f km", meters/1000)
	}
}
