// Package detector holds the cached geometry of ground-based interferometer
// sites, plus the Nautilus resonant bar, and computes their antenna-pattern
// response and light-travel delay for a source on the sky.
//
// The site table is built once at package initialisation and never mutated.
// Sites are keyed by [Name]; free-form detector strings ("LHO_4k",
// "Livingston", "V1") are resolved with [ChannelPrefix] and [Lookup].
//
// # Usage
//
//	site, err := detector.Lookup("H1")
//	resp := detector.AMResponse(site, detector.Source{
//		Sky:          detector.Sky{Longitude: ra, Latitude: dec},
//		Polarization: psi,
//	}, t)
//	delay := detector.TimeDelay(site, detector.Sky{Longitude: ra, Latitude: dec}, t)
package detector
