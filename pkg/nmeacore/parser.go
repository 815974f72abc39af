package nmeacore

// ByteSource is the external collaborator that yields one character at a
// time from a serial line (spec.md §6). IsEmpty must be non-blocking;
// NextByte must only be called when the most recent IsEmpty check was
// false.
type ByteSource interface {
	IsEmpty() bool
	NextByte() byte
}

// Parser is the incremental NMEA lexer, field dispatcher, and publisher.
// It owns its staging record and internal state exclusively; the caller
// owns the Fix snapshot it publishes into. A Parser must not be shared
// across goroutines without external synchronization (spec.md §5).
type Parser struct {
	cfg  Config
	mask flag

	liveFlags     flag
	awaitingClear bool

	star        bool
	crc         byte
	recvCRC     byte
	recvNibbles int

	fieldIndex int
	fieldBuf   [fieldBufCap]byte
	fieldLen   int

	kind SentenceKind

	gsaIDsCount int
	gsvTotal    int
	gsvCurrent  int

	firstPublishDone bool
	pendingNewData   bool

	staging Fix
}

// New creates a Parser ready to receive bytes.
func New(cfg Config) *Parser {
	return &Parser{cfg: cfg, mask: cfg.mask()}
}

func (p *Parser) setFlag(f flag) {
	p.liveFlags |= f
}

// Update drains every byte currently available from src, feeding it
// through the lexer and dispatcher, and returns the caller-visible
// status after the drain. snapshot is written to only at the instant a
// complete cycle is published; it is otherwise left untouched.
func (p *Parser) Update(src ByteSource, snapshot *Fix) Status {
	for !src.IsEmpty() {
		p.step(src.NextByte(), snapshot)
	}
	return p.reportStatus()
}

func (p *Parser) reportStatus() Status {
	if p.pendingNewData {
		p.pendingNewData = false
		return NewData
	}
	if !p.firstPublishDone {
		return FirstDataWaiting
	}
	return OldData
}

func (p *Parser) step(b byte, snapshot *Fix) {
	if p.awaitingClear {
		p.liveFlags = 0
		p.awaitingClear = false
	}

	p.processByte(b)

	// Publish only at the end of a sentence, after its checksum has been
	// checked at '\r', so a corrupted sentence never reaches the snapshot.
	if b == '\n' && p.mask != 0 && p.liveFlags == p.mask {
		p.publish(snapshot)
		p.awaitingClear = true
	}
}

// processByte implements the sentence lexer state table of spec.md §4.1.
func (p *Parser) processByte(b byte) {
	switch b {
	case '$':
		p.star = false
		p.crc = 0
		p.fieldIndex = 0
		p.fieldLen = 0
		p.kind = Unknown
		p.appendField(b)

	case ',':
		p.crc ^= b
		p.terminateField()
		p.fieldIndex++
		p.fieldLen = 0

	case '*':
		p.star = true
		p.terminateField()
		p.fieldIndex++
		p.fieldLen = 0
		p.recvCRC = 0
		p.recvNibbles = 0

	case '\r':
		if p.star && p.recvNibbles == 2 {
			if p.recvCRC != p.crc {
				p.liveFlags = 0
			}
		}
		p.fieldIndex = 0

	case '\n':
		p.fieldIndex = 0
		if p.kind == GSV && p.gsvTotal != 0 && p.gsvCurrent == p.gsvTotal {
			p.setFlag(flagSatDesc)
		}

	default:
		if !p.star {
			p.crc ^= b
			p.appendField(b)
		} else if p.recvNibbles < 2 {
			p.recvCRC = p.recvCRC<<4 | byte(decodeHexDigit(b))
			p.recvNibbles++
		}
	}
}

func (p *Parser) appendField(b byte) {
	if p.fieldLen < len(p.fieldBuf) {
		p.fieldBuf[p.fieldLen] = b
		p.fieldLen++
	}
}

// terminateField dispatches the field just completed (empty-field rule
// included) and is called on every delimiter (',' or '*').
func (p *Parser) terminateField() {
	data := string(p.fieldBuf[:p.fieldLen])
	empty := p.fieldLen == 0
	p.dispatchField(p.fieldIndex, data, empty)
}

// publish copies the staging record to snapshot in one step and marks
// the cycle complete. SatellitesInUse is derived here from the
// non-zero entries written by GSA, a field the original firmware tracks
// independently of GGA's reported count (see SPEC_FULL.md §5).
func (p *Parser) publish(snapshot *Fix) {
	inUse := 0
	for _, id := range p.staging.SatelliteIDs {
		if id != 0 {
			inUse++
		}
	}
	p.staging.SatellitesInUse = inUse

	if snapshot != nil {
		*snapshot = p.staging
	}

	p.firstPublishDone = true
	p.pendingNewData = true
}
