package currents

import (
	"github.com/spencer-p/nykpcurrents/pkg/sunset"
)

// Station is a NOAA current prediction station.
type Station struct {
	// Name is shown in the post title.
	Name string
	// ID is NOAA's station id with its depth bin, e.g. "NYH1927_13".
	ID string
	// Place locates the station for daylight hours. Optional.
	Place *sunset.Place
}

// DefaultStation is where the NYKP paddles from.
var DefaultStation = Station{
	Name:  "Hudson River Entrance",
	ID:    "NYH1927_13",
	Place: &sunset.HudsonRiverEntrance,
}

// StationByID makes a station for an id given on the command line.
func StationByID(id string) Station {
	return Station{Name: "Station " + id, ID: id}
}
