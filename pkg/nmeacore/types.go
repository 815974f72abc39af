// Package nmeacore implements an incremental, allocation-free NMEA 0183
// sentence parser and fix aggregator suitable for an embedded controller
// fed one byte at a time from a non-blocking serial source.
package nmeacore

// SentenceKind identifies the talker sentence a byte stream currently
// belongs to. Any sentence whose address field does not match one of the
// four recognized mnemonics is Unknown and its fields are ignored (its
// bytes still participate in the checksum).
type SentenceKind int

const (
	Unknown SentenceKind = iota
	GGA
	RMC
	GSA
	GSV
)

// Status is the three-valued result returned by every call to Update.
// There is no error status: the caller polls, and staleness is conveyed
// by OldData rather than by a Go error.
type Status int

const (
	// OldData means no new publish has happened since the last call.
	OldData Status = iota
	// NewData means a publish happened during this call; it is reported
	// exactly once per completed cycle.
	NewData
	// FirstDataWaiting means no sentence cycle has completed since init.
	FirstDataWaiting
)

func (s Status) String() string {
	switch s {
	case NewData:
		return "NewData"
	case FirstDataWaiting:
		return "FirstDataWaiting"
	default:
		return "OldData"
	}
}

// flag is a single bit in the completion bitset. A publish happens
// exactly when the live flag set equals the configured completion mask.
type flag uint32

const (
	flagTime flag = 1 << iota
	flagLat
	flagNS
	flagLon
	flagEW
	flagFix
	flagSats
	flagAlt
	flagValidity
	flagSpeed
	flagDirection
	flagDate
	flagFixMode
	flagSatIDs
	flagPDOP
	flagHDOP
	flagVDOP
	flagSatsInView
	flagSatDesc
)

// MaxSatelliteIDs is the size of the GSA active-satellite-ID table.
const MaxSatelliteIDs = 12

// DefaultMaxInView sizes the compile-time satellite-in-view table. The
// GSV sentence family typically spans two to nine sentences of four
// satellites each; 36 covers the common case without heap allocation.
const DefaultMaxInView = 36

// fieldBufCap bounds the per-field scratch buffer. The spec requires at
// least 15 bytes; bytes beyond this capacity are dropped rather than
// overrunning the buffer (the one hardening the original firmware omits).
const fieldBufCap = 24

// Time is UTC time of day as received in a GGA sentence (hhmmss.cc).
type Time struct {
	Hour       int
	Minute     int
	Second     int
	Hundredths int
}

// Date is the RMC ddmmyy date field, stored exactly as received (the
// two-digit year is not expanded to a century by the core).
type Date struct {
	Day   int
	Month int
	Year  int
}

// SatelliteDescriptor is one GSV satellite-in-view table entry.
type SatelliteDescriptor struct {
	ID        int
	Elevation int
	Azimuth   int
	SNR       int
}

// Fix is the aggregated GNSS state: the staging record while being
// assembled, and the only object ever exposed to a caller once published
// as a Snapshot. Fields retain their previous value across sentences that
// do not touch them; only the per-cycle completion flags are reset at
// sentence-cycle boundaries, not the data itself (see design notes on
// cross-sentence coalescing).
type Fix struct {
	// GGA
	Latitude        float64
	Longitude       float64
	Altitude        float64
	SatellitesUsed  int
	FixQuality      int
	Time            Time

	// RMC
	Speed     float64
	Direction float64
	Date      Date
	Validity  bool

	// GSA
	HDOP          float64
	VDOP          float64
	PDOP          float64
	FixMode       int
	SatelliteIDs  [MaxSatelliteIDs]int

	// GSV
	SatellitesInView int
	SatDesc          [DefaultMaxInView]SatelliteDescriptor

	// SatellitesInUse is derived at publish time from the non-zero
	// entries of SatelliteIDs (see original_source tm_stm32f4_gps.c,
	// which tracks this independently of GGA's reported count).
	SatellitesInUse int
}

// Config selects which sentence families participate in the completion
// mask. Disabling a family removes its flag bits and skips its dispatch
// rows entirely (spec.md "Configuration").
type Config struct {
	EnableGGA bool
	EnableRMC bool
	EnableGSA bool
	EnableGSV bool
}

func (c Config) mask() flag {
	var m flag
	if c.EnableGGA {
		m |= flagTime | flagLat | flagNS | flagLon | flagEW | flagFix | flagSats | flagAlt
	}
	if c.EnableRMC {
		m |= flagValidity | flagSpeed | flagDirection | flagDate
	}
	if c.EnableGSA {
		m |= flagFixMode | flagSatIDs | flagPDOP | flagHDOP | flagVDOP
	}
	if c.EnableGSV {
		m |= flagSatsInView | flagSatDesc
	}
	return m
}
