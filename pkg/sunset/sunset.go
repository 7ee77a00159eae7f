// Package sunset computes daylight hours for a place, used to tell paddlers
// when the water is lit alongside the current predictions.
package sunset

import (
	"fmt"
	"time"

	"github.com/keep94/sunrise"
)

const dayFormat = "20060102"

// Daylight returns the sunrise and sunset on the calendar day of t at place.
// Both times are in the place's time zone.
func Daylight(t time.Time, place Place) (rise, set SunEvent) {
	t = t.In(place.Location)
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, place.Location)

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, noon)

	// The sunrise package is not very clean with its dates; nudge it onto
	// the day we asked for.
	for i := 0; i < 2 && !sameDay(noon, s.Sunrise()); i++ {
		if s.Sunrise().Before(noon) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}

	return SunEvent{s.Sunrise().In(place.Location), Sunrise},
		SunEvent{s.Sunset().In(place.Location), Sunset}
}

// Line renders a sunrise and sunset pair as a single sentence, e.g.
// "Sunrise 7:12 AM, Sunset 4:40 PM".
func Line(rise, set SunEvent) string {
	return fmt.Sprintf("%s, %s", rise, set)
}

func sameDay(t, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.In(t.Location()).Format(dayFormat)
}
