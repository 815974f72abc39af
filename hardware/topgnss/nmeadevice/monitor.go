package nmeadevice

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fenwick-gnss/nmeacore/pkg/nmeacore"
)

// FixHandler receives a published Fix snapshot and the Status that
// triggered delivery (always NewData for handler callbacks).
type FixHandler func(fix nmeacore.Fix, status nmeacore.Status)

// portByteSource adapts chunked serial Read() calls to the byte-at-a-time
// nmeacore.ByteSource contract, matching the teacher's pattern of draining
// a read buffer before issuing the next blocking Read.
type portByteSource struct {
	port   SerialPort
	buf    [256]byte
	n      int
	cursor int
	err    error
}

func (s *portByteSource) refill() {
	s.n, s.err = s.port.Read(s.buf[:])
	s.cursor = 0
}

func (s *portByteSource) IsEmpty() bool {
	for s.cursor >= s.n {
		if s.err != nil {
			return true
		}
		s.refill()
		if s.n == 0 {
			return true
		}
	}
	return false
}

func (s *portByteSource) NextByte() byte {
	b := s.buf[s.cursor]
	s.cursor++
	return b
}

// monitorSession owns the background goroutine draining a SerialPort into
// an nmeacore.Parser and delivering completed fixes to a FixHandler.
type monitorSession struct {
	id       string
	stopChan chan struct{}
	doneChan chan struct{}
	once     sync.Once
}

func (m *monitorSession) stop() {
	m.once.Do(func() { close(m.stopChan) })
	<-m.doneChan
}

// MonitorFixes starts a background goroutine that feeds bytes read from
// the device's serial port into an nmeacore.Parser configured by cfg,
// invoking handler each time a new Fix snapshot publishes. Only one
// monitoring session may be active per Device; call Disconnect or
// StopMonitoring to end it. Returns the session's UUID, logged on start
// and stop so operators can correlate a run's lifetime in the log stream.
func (d *Device) MonitorFixes(cfg nmeacore.Config, pollInterval time.Duration, handler FixHandler) (string, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.connected {
		return "", errNotConnected
	}
	if d.monitor != nil {
		return "", errAlreadyMonitoring
	}
	if pollInterval <= 0 {
		pollInterval = 50 * time.Millisecond
	}

	session := &monitorSession{
		id:       uuid.New().String(),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	d.monitor = session
	d.logger.Infof("monitor session %s started\n", session.id)

	parser := nmeacore.New(cfg)
	src := &portByteSource{port: d.serialPort}

	go func() {
		defer close(session.doneChan)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		var snapshot nmeacore.Fix
		for {
			select {
			case <-session.stopChan:
				d.logger.Infof("monitor session %s stopped\n", session.id)
				return
			case <-ticker.C:
				status := parser.Update(src, &snapshot)
				if status == nmeacore.NewData {
					handler(snapshot, status)
				}
			}
		}
	}()

	return session.id, nil
}

// StopMonitoring ends the active monitoring session, if any, and blocks
// until its goroutine has exited.
func (d *Device) StopMonitoring() {
	d.mutex.Lock()
	session := d.monitor
	d.monitor = nil
	d.mutex.Unlock()

	if session != nil {
		session.stop()
	}
}
