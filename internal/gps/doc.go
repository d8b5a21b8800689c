// Package gps runs an NMEA 0183 receiver on a serial port.
//
// Lines are checksum validated and fed to an nmea0183.Session; fixes and
// satellite lists completed by the session are kept as a Snapshot and
// forwarded as JSON reports to the configured sinks.
package gps
