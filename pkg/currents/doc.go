// Package currents turns NOAA current predictions into a short text report
// and posts it. The report is one line per predicted event, in the order
// NOAA lists them:
//
//	2024-01-01 05:00  Max Flood (2.3 mph)
//	2024-01-01 08:12  Slack
//
// Speeds arrive in knots and are shown in miles per hour when known.
package currents
