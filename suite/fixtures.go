package suite

import (
	"fmt"
	"time"

	// Embedded zone database so fixtures resolve on hosts without one.
	_ "time/tzdata"
)

// Fixtures are the timezone-aware moments the atmosphere suite evaluates
// solar functions at.
type Fixtures struct {
	EarthSun time.Time // 2020-06-06 10:00 UTC
	Perth    time.Time // 2020-06-06 07:10:57 Australia/Perth
	Edmonton time.Time // 2018-04-15 13:43:05 America/Edmonton
}

// NewFixtures builds the standard fixtures.
func NewFixtures() (Fixtures, error) {
	perth, err := time.LoadLocation("Australia/Perth")
	if err != nil {
		return Fixtures{}, fmt.Errorf("load perth zone: %w", err)
	}
	edmonton, err := time.LoadLocation("America/Edmonton")
	if err != nil {
		return Fixtures{}, fmt.Errorf("load edmonton zone: %w", err)
	}

	return Fixtures{
		EarthSun: time.Date(2020, 6, 6, 10, 0, 0, 0, time.UTC),
		Perth:    time.Date(2020, 6, 6, 7, 10, 57, 0, perth),
		Edmonton: time.Date(2018, 4, 15, 13, 43, 5, 0, edmonton),
	}, nil
}
