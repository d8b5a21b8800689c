package nmea0183

// Time is the UTC time and date reported by a receiver.
type Time struct {
	Hour   uint8
	Minute uint8
	// Millisecond of the minute, 0..59999.
	Millisecond uint16
	MonthDay    uint8
	Month       uint8
	// CenturyYear is the two digit year, 0..99.
	CenturyYear uint8
}

// TimeOfDayMillis returns milliseconds since midnight.
func (t Time) TimeOfDayMillis() uint32 {
	return uint32(t.Hour)*3600000 + uint32(t.Minute)*60000 + uint32(t.Millisecond)
}

// NavData holds position and motion in fixed point units.
type NavData struct {
	// Latitude and Longitude in nanodegrees.
	Latitude  int64
	Longitude int64
	// Bearing in millidegrees, 0..359999.
	Bearing uint32
	// Speed in millimeters per second.
	Speed uint32
	// Altitude above mean sea level in millimeters.
	Altitude int32
	// GeoidSeparation in millimeters.
	GeoidSeparation int32
}

type FixQuality uint8

const (
	FixQualityInvalid FixQuality = iota
	FixQualityGNSSSPS
	FixQualityDGNSS
	FixQualityGNSSPPS
	FixQualityRTK
	FixQualityFloatRTK
	FixQualityEstimated
)

type FixStatus uint8

const (
	FixStatusNoFix FixStatus = iota
	FixStatusGNSSFix
	FixStatusDGNSSFix
	FixStatusEstimatedFix
)

// Info describes the quality of a fix.
type Info struct {
	SatellitesCount uint16
	// HDOP in thousandths.
	HDOP       uint32
	FixStatus  FixStatus
	FixQuality FixQuality
}

// Fix is the combined record assembled from GGA and RMC.
type Fix struct {
	Nav  NavData
	Info Info
	UTC  Time
}

// System is a GNSS constellation. Values are bit flags so they can be
// combined into masks.
type System uint8

const (
	SystemGPS System = 1 << iota
	SystemGLONASS
	SystemGalileo
	SystemBeiDou
	SystemQZSS
	SystemIRNSS
	SystemSBAS
	SystemIMES
)

// Satellite is one entry of a GSV sentence after PRN normalization.
type Satellite struct {
	PRN uint16
	// SNR in dB-Hz, 0..99. Zero when not tracked.
	SNR uint8
	// Elevation in degrees, 0..90.
	Elevation uint8
	// Azimuth in degrees, 0..359.
	Azimuth   uint16
	System    System
	IsTracked bool
}

// Result reports whether a decode changed the fix record.
type Result uint8

const (
	// Failed accompanies a non-nil error.
	Failed Result = iota
	// NoUpdate means the sentence was valid but carried nothing to apply,
	// such as an RMC with a void status or a GGA without a fix.
	NoUpdate
	Updated
)
