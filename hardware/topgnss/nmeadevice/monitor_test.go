package nmeadevice

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fenwick-gnss/nmeacore/pkg/nmeacore"
)

// chunkSerialPort replays a fixed byte stream one chunk at a time,
// simulating a UART trickling bytes in over successive Read calls.
type chunkSerialPort struct {
	mock.Mock
	chunks [][]byte
	idx    int
	mu     sync.Mutex
}

func (p *chunkSerialPort) Open(string, int) error { return nil }
func (p *chunkSerialPort) Close() error            { return nil }

func (p *chunkSerialPort) Read(buffer []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idx >= len(p.chunks) {
		return 0, nil
	}
	n := copy(buffer, p.chunks[p.idx])
	p.idx++
	return n, nil
}

func (p *chunkSerialPort) Write(data []byte) (int, error)        { return len(data), nil }
func (p *chunkSerialPort) SetReadTimeout(time.Duration) error    { return nil }
func (p *chunkSerialPort) ListPorts() ([]string, error)          { return nil, nil }
func (p *chunkSerialPort) GetPortDetails() ([]PortDetail, error) { return nil, nil }

func TestMonitorFixesDeliversPublishedFix(t *testing.T) {
	sentence := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n"
	port := &chunkSerialPort{chunks: [][]byte{[]byte(sentence)}}

	device := NewDevice(port)
	require := assert.New(t)
	require.NoError(device.Connect("COM1", 38400))

	var mu sync.Mutex
	var got *nmeacore.Fix
	done := make(chan struct{})

	cfg := nmeacore.Config{EnableGGA: true}
	_, err := device.MonitorFixes(cfg, 5*time.Millisecond, func(fix nmeacore.Fix, status nmeacore.Status) {
		mu.Lock()
		defer mu.Unlock()
		if got == nil {
			f := fix
			got = &f
			close(done)
		}
	})
	require.NoError(err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published fix")
	}

	device.StopMonitoring()

	mu.Lock()
	defer mu.Unlock()
	assert.NotNil(t, got)
	assert.InDelta(t, 545.4, got.Altitude, 0.01)
	assert.Equal(t, 8, got.SatellitesUsed)
}

func TestMonitorFixesRejectsSecondSession(t *testing.T) {
	port := &chunkSerialPort{}
	device := NewDevice(port)
	assert.NoError(t, device.Connect("COM1", 38400))

	_, err := device.MonitorFixes(nmeacore.Config{EnableGGA: true}, time.Millisecond, func(nmeacore.Fix, nmeacore.Status) {})
	assert.NoError(t, err)

	_, err = device.MonitorFixes(nmeacore.Config{EnableGGA: true}, time.Millisecond, func(nmeacore.Fix, nmeacore.Status) {})
	assert.Error(t, err)

	device.StopMonitoring()
}

func TestMonitorFixesRequiresConnection(t *testing.T) {
	port := &chunkSerialPort{}
	device := NewDevice(port)

	_, err := device.MonitorFixes(nmeacore.Config{EnableGGA: true}, time.Millisecond, func(nmeacore.Fix, nmeacore.Status) {})
	assert.Error(t, err)
}
