package sunset

import (
	"fmt"
	"time"
)

const clockFmt = "3:04 PM"

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

var (
	// HudsonRiverEntrance is the mouth of the Hudson off lower Manhattan.
	HudsonRiverEntrance = Place{
		40.7064, -74.0228,
		locationOrPanic("America/New_York"),
	}
)

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time
	Event Event
}

func (s SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Event, s.Time.Format(clockFmt))
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
