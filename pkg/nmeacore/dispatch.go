package nmeacore

// sentencePrefixes maps the recognized five-letter mnemonics (with their
// leading '$') to a SentenceKind. Field 0 is matched by prefix, not
// equality, so trailing characters after the mnemonic (e.g. "$GPGGA2")
// still resolve; only the "$GP" talker is recognized.
var sentencePrefixes = []struct {
	prefix string
	kind   SentenceKind
}{
	{"$GPGGA", GGA},
	{"$GPRMC", RMC},
	{"$GPGSA", GSA},
	{"$GPGSV", GSV},
}

func classifySentence(field string) SentenceKind {
	for _, p := range sentencePrefixes {
		if hasPrefix(field, p.prefix) {
			return p.kind
		}
	}
	return Unknown
}

func hasPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

// dispatchField decodes one completed field into the staging record and
// sets the matching completion flag, if any. A sentence of a family not
// enabled in the Config is treated as Unknown. empty indicates the field was
// zero-length between its delimiters: per spec.md §4.2, the flag that
// would have been set is still set, but the staging value is left
// untouched (the "absent optional" tolerance for no-fix periods).
func (p *Parser) dispatchField(index int, data string, empty bool) {
	if index == 0 {
		p.kind = classifySentence(data)
		switch {
		case p.kind == GGA && !p.cfg.EnableGGA,
			p.kind == RMC && !p.cfg.EnableRMC,
			p.kind == GSA && !p.cfg.EnableGSA,
			p.kind == GSV && !p.cfg.EnableGSV:
			p.kind = Unknown
		}
		return
	}

	switch p.kind {
	case GGA:
		p.dispatchGGA(index, data, empty)
	case RMC:
		p.dispatchRMC(index, data, empty)
	case GSA:
		p.dispatchGSA(index, data, empty)
	case GSV:
		p.dispatchGSV(index, data, empty)
	}
}

func (p *Parser) dispatchGGA(index int, data string, empty bool) {
	switch index {
	case 1:
		if !empty {
			p.staging.Time = decodeTime(data)
		}
		p.setFlag(flagTime)
	case 2:
		if !empty {
			p.staging.Latitude = decodeDegrees(data)
		}
		p.setFlag(flagLat)
	case 3:
		if !empty && data == "S" {
			p.staging.Latitude = -p.staging.Latitude
		}
		p.setFlag(flagNS)
	case 4:
		if !empty {
			p.staging.Longitude = decodeDegrees(data)
		}
		p.setFlag(flagLon)
	case 5:
		if !empty && data == "W" {
			p.staging.Longitude = -p.staging.Longitude
		}
		p.setFlag(flagEW)
	case 6:
		if !empty {
			p.staging.FixQuality, _ = decodeUint(data)
		}
		p.setFlag(flagFix)
	case 7:
		if !empty {
			p.staging.SatellitesUsed, _ = decodeUint(data)
		}
		p.setFlag(flagSats)
	case 9:
		if !empty {
			p.staging.Altitude = decodeFixed(data)
		}
		p.setFlag(flagAlt)
	}
}

func (p *Parser) dispatchRMC(index int, data string, empty bool) {
	switch index {
	case 2:
		if !empty {
			p.staging.Validity = data == "A"
		}
		p.setFlag(flagValidity)
	case 7:
		if !empty {
			p.staging.Speed = decodeFixed(data)
		}
		p.setFlag(flagSpeed)
	case 8:
		if !empty {
			p.staging.Direction = decodeFixed(data)
		}
		p.setFlag(flagDirection)
	case 9:
		if !empty {
			p.staging.Date = decodeDate(data)
		}
		p.setFlag(flagDate)
	}
}

func (p *Parser) dispatchGSA(index int, data string, empty bool) {
	switch {
	case index == 2:
		if !empty {
			p.staging.FixMode, _ = decodeUint(data)
		}
		p.setFlag(flagFixMode)
	case index >= 3 && index <= 14:
		if empty {
			p.setFlag(flagSatIDs)
			break
		}
		slot := index - 3
		if slot < MaxSatelliteIDs {
			id, _ := decodeUint(data)
			p.staging.SatelliteIDs[slot] = id
		}
		p.gsaIDsCount++
		if p.gsaIDsCount == p.staging.SatellitesUsed {
			p.setFlag(flagSatIDs)
			p.gsaIDsCount = 0
		}
	case index == 15:
		if !empty {
			p.staging.PDOP = decodeFixed(data)
		}
		p.setFlag(flagPDOP)
	case index == 16:
		if !empty {
			p.staging.HDOP = decodeFixed(data)
		}
		p.setFlag(flagHDOP)
	case index == 17:
		if !empty {
			p.staging.VDOP = decodeFixed(data)
		}
		p.setFlag(flagVDOP)
	}
}

func (p *Parser) dispatchGSV(index int, data string, empty bool) {
	switch {
	case index == 1:
		if !empty {
			p.gsvTotal, _ = decodeUint(data)
		}
	case index == 2:
		if !empty {
			p.gsvCurrent, _ = decodeUint(data)
		}
	case index == 3:
		if !empty {
			p.staging.SatellitesInView, _ = decodeUint(data)
		}
		p.setFlag(flagSatsInView)
	default:
		p.dispatchGSVSlot(index, data, empty)
	}
}

// dispatchGSVSlot writes one field of a satellite descriptor. d is the
// sentence-relative data index past the three header fields; slot is
// which of the up-to-four descriptors in this sentence it belongs to;
// absoluteSlot is (current_sentence_number-1)*4 + slot, per spec.md §4.4.
func (p *Parser) dispatchGSVSlot(index int, data string, empty bool) {
	d := index - 4
	if d < 0 {
		return
	}
	slot := d / 4
	fieldOfDescriptor := d % 4
	if p.gsvCurrent < 1 {
		return
	}
	absoluteSlot := (p.gsvCurrent-1)*4 + slot
	if absoluteSlot < 0 || absoluteSlot >= len(p.staging.SatDesc) {
		return
	}
	if empty {
		return
	}
	value, _ := decodeUint(data)
	desc := &p.staging.SatDesc[absoluteSlot]
	switch fieldOfDescriptor {
	case 0:
		desc.ID = value
	case 1:
		desc.Elevation = value
	case 2:
		desc.Azimuth = value
	case 3:
		desc.SNR = value
	}
}
