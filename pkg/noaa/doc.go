// Package noaa implements queries to NOAA to retrieve tidal current
// predictions. Predictions are requested per current station and depth bin
// (see CurrentsQuery). A successful query returns the max flood, max ebb and
// slack events as a provider table plus a link to NOAA's own predictions page
// for the station. All times are local to the station.
package noaa
