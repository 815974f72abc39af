package nmeacore

// Numeric decoders for NMEA field payloads. Every decoder here parses a
// leading prefix of its input and ignores trailing garbage without
// signalling an error: the checksum is the authoritative validator for a
// sentence, per spec.md §4.3.

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// decodeUint consumes leading ASCII digits and returns the accumulated
// value along with how many digits were consumed.
func decodeUint(s string) (value int, digits int) {
	for digits < len(s) && isDigit(s[digits]) {
		value = value*10 + int(s[digits]-'0')
		digits++
	}
	return value, digits
}

// decodeFixed parses "integer.fractional" and returns the integer part
// plus the fractional value divided by 10^digitCount, negated when the
// field starts with '-'. A missing dot or fractional part yields a zero
// fractional contribution.
func decodeFixed(s string) float64 {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			break
		}
	}

	var intPart string
	var fracPart string
	if dot == -1 {
		intPart = s
	} else {
		intPart = s[:dot]
		fracPart = s[dot+1:]
	}

	i, _ := decodeUint(intPart)
	f, digits := decodeUint(fracPart)

	value := float64(i)
	if digits > 0 {
		div := 1.0
		for n := 0; n < digits; n++ {
			div *= 10
		}
		value += float64(f) / div
	}

	if neg {
		value = -value
	}
	return value
}

// decodeDegrees converts an NMEA ddmm.mmmm (or dddmm.mmmm) field into
// unsigned decimal degrees: deg = I/100, minutes = I%100, where I is the
// integer portion before the dot.
func decodeDegrees(s string) float64 {
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			break
		}
	}

	var intPart, fracPart string
	if dot == -1 {
		intPart = s
	} else {
		intPart = s[:dot]
		fracPart = s[dot+1:]
	}

	i, _ := decodeUint(intPart)
	f, digits := decodeUint(fracPart)

	deg := i / 100
	minInt := i % 100

	minutes := float64(minInt)
	if digits > 0 {
		div := 1.0
		for n := 0; n < digits; n++ {
			div *= 10
		}
		minutes += float64(f) / div
	}

	return float64(deg) + minutes/60.0
}

// substr returns s[start:start+n], clipped to whatever is actually
// available so short or malformed fields never panic.
func substr(s string, start, n int) string {
	if start >= len(s) {
		return ""
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// decodeTime parses a GGA hhmmss.cc field. Short or malformed input
// decodes whatever prefix is present; missing digit groups stay zero.
func decodeTime(s string) Time {
	hh, _ := decodeUint(substr(s, 0, 2))
	mm, _ := decodeUint(substr(s, 2, 2))
	ss, _ := decodeUint(substr(s, 4, 2))
	var hundredths int
	if len(s) > 6 && s[6] == '.' {
		hundredths, _ = decodeUint(substr(s, 7, 2))
	}
	return Time{Hour: hh, Minute: mm, Second: ss, Hundredths: hundredths}
}

// decodeDate parses an RMC ddmmyy field.
func decodeDate(s string) Date {
	dd, _ := decodeUint(substr(s, 0, 2))
	mm, _ := decodeUint(substr(s, 2, 2))
	yy, _ := decodeUint(substr(s, 4, 2))
	return Date{Day: dd, Month: mm, Year: yy}
}

// decodeHexDigit converts a single ASCII hex digit; any byte outside
// 0-9/A-F/a-f decodes to 0, matching the original firmware's lenient
// behavior (the checksum comparison is what actually rejects bad data).
func decodeHexDigit(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return 0
	}
}
