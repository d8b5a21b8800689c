package gps

import (
	"time"

	"gnssnmea/internal/nmea0183"
)

const (
	KindFix        = "fix"
	KindSatellites = "satellites"
)

// FixReport is the JSON form of a published fix. Values keep the fixed
// point units of the decoder.
type FixReport struct {
	UTC string `json:"utc,omitempty"`

	LatNanoDeg        int64  `json:"lat_ndeg"`
	LonNanoDeg        int64  `json:"lon_ndeg"`
	SpeedMMS          uint32 `json:"speed_mms"`
	BearingMilliDeg   uint32 `json:"bearing_mdeg"`
	AltitudeMM        int32  `json:"altitude_mm"`
	GeoidSeparationMM int32  `json:"geoid_separation_mm"`

	FixStatus  string `json:"fix_status"`
	FixQuality string `json:"fix_quality"`
	Satellites uint16 `json:"satellites"`
	HDOPMilli  uint32 `json:"hdop_milli"`
}

type SatelliteReport struct {
	System    string `json:"system"`
	PRN       uint16 `json:"prn"`
	Elevation uint8  `json:"elevation"`
	Azimuth   uint16 `json:"azimuth"`
	SNR       uint8  `json:"snr"`
	Tracked   bool   `json:"tracked"`
}

type SatellitesReport struct {
	Satellites []SatelliteReport `json:"satellites"`
}

func newFixReport(fix nmea0183.Fix) FixReport {
	r := FixReport{
		LatNanoDeg:        fix.Nav.Latitude,
		LonNanoDeg:        fix.Nav.Longitude,
		SpeedMMS:          fix.Nav.Speed,
		BearingMilliDeg:   fix.Nav.Bearing,
		AltitudeMM:        fix.Nav.Altitude,
		GeoidSeparationMM: fix.Nav.GeoidSeparation,
		FixStatus:         fix.Info.FixStatus.String(),
		FixQuality:        fix.Info.FixQuality.String(),
		Satellites:        fix.Info.SatellitesCount,
		HDOPMilli:         fix.Info.HDOP,
	}
	if t, ok := fix.UTC.ToTime(); ok {
		r.UTC = t.Format(time.RFC3339Nano)
	}
	return r
}

func newSatellitesReport(sats []nmea0183.Satellite) SatellitesReport {
	out := SatellitesReport{Satellites: make([]SatelliteReport, 0, len(sats))}
	for _, sv := range sats {
		out.Satellites = append(out.Satellites, SatelliteReport{
			System:    sv.System.String(),
			PRN:       sv.PRN,
			Elevation: sv.Elevation,
			Azimuth:   sv.Azimuth,
			SNR:       sv.SNR,
			Tracked:   sv.IsTracked,
		})
	}
	return out
}
