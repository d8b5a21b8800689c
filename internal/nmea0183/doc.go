// Package nmea0183 decodes and encodes NMEA 0183 sentences.
//
// Input is a sentence already split into tokens (see Split) with the
// checksum either validated by the caller or checked with Validate.
// Values are fixed point: coordinates in nanodegrees, speed in mm/s,
// bearing in millidegrees, altitude in millimeters.
//
// A Session correlates GGA with RMC and reassembles multi-part GSV
// sentences for one receiver. Sessions are not safe for concurrent use.
package nmea0183
