// Package nmeadevice wires nmeacore.Parser to a physical GNSS receiver
// over a serial UART, the device-monitoring front end a complete repo
// around the core would have (SPEC_FULL.md §5), adapted from the
// teacher's hardware/topgnss/top708 connect/retry/monitor shape.
package nmeadevice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Device manages the lifecycle of a serial connection to a GNSS
// receiver and drives an nmeacore.Parser from its byte stream.
type Device struct {
	serialPort SerialPort
	connected  bool
	mutex      sync.Mutex
	logger     Logger

	portName string
	baudRate int

	retryCount int
	retryDelay time.Duration

	monitor *monitorSession
}

// NewDevice creates a Device around the given transport.
func NewDevice(serialPort SerialPort) *Device {
	return &Device{
		serialPort: serialPort,
		logger:     NewDefaultLogger(),
		retryCount: 3,
		retryDelay: 1 * time.Second,
	}
}

// SetLogger installs a custom Logger.
func (d *Device) SetLogger(logger Logger) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.logger = logger
}

// SetRetryOptions configures connection retry behavior.
func (d *Device) SetRetryOptions(retryCount int, retryDelay time.Duration) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.retryCount = retryCount
	d.retryDelay = retryDelay
}

// Connect opens the serial port, retrying up to retryCount times.
func (d *Device) Connect(portName string, baudRate int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.connected {
		return fmt.Errorf("device already connected")
	}

	if baudRate <= 0 {
		baudRate = 38400
	}

	d.portName = portName
	d.baudRate = baudRate
	d.logger.Infof("connecting to %s at %d baud...\n", portName, baudRate)

	var err error
	for attempt := 0; attempt <= d.retryCount; attempt++ {
		if attempt > 0 {
			d.logger.Infof("retrying connection (attempt %d/%d)...\n", attempt, d.retryCount)
			time.Sleep(d.retryDelay)
		}

		err = d.serialPort.Open(portName, baudRate)
		if err == nil {
			d.connected = true
			d.logger.Infof("connected to %s\n", portName)
			return nil
		}
		d.logger.Warnf("connection attempt %d failed: %v\n", attempt+1, err)
	}

	return fmt.Errorf("failed to connect to device after %d attempts: %w", d.retryCount+1, err)
}

// ConnectWithContext is Connect with cancellation support.
func (d *Device) ConnectWithContext(ctx context.Context, portName string, baudRate int) error {
	resultCh := make(chan error, 1)
	go func() { resultCh <- d.Connect(portName, baudRate) }()

	select {
	case <-ctx.Done():
		d.Disconnect()
		return fmt.Errorf("connection canceled: %w", ctx.Err())
	case err := <-resultCh:
		return err
	}
}

// Disconnect stops any active monitoring session and closes the port.
func (d *Device) Disconnect() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.connected {
		return nil
	}

	if d.monitor != nil {
		d.monitor.stop()
		d.monitor = nil
	}

	if err := d.serialPort.Close(); err != nil {
		return fmt.Errorf("error disconnecting device: %w", err)
	}

	d.connected = false
	d.logger.Infof("disconnected\n")
	return nil
}

// IsConnected reports whether the serial port is open.
func (d *Device) IsConnected() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.connected
}

// VerifyConnection polls the port for recognizable NMEA framing until
// timeout elapses.
func (d *Device) VerifyConnection(timeout time.Duration) bool {
	if !d.IsConnected() {
		d.logger.Warnf("cannot verify connection: device not connected\n")
		return false
	}

	buffer := make([]byte, 256)
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		n, err := d.serialPort.Read(buffer)
		if err == nil && n > 0 {
			data := string(buffer[:n])
			if strings.Contains(data, "$GN") || strings.Contains(data, "$GP") {
				d.logger.Infof("connection verified: valid NMEA data received\n")
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	d.logger.Warnf("connection verification failed: no valid NMEA data within timeout\n")
	return false
}

// WriteCommand sends a raw command, appending CRLF if absent.
func (d *Device) WriteCommand(command string) error {
	if !d.IsConnected() {
		return fmt.Errorf("device not connected")
	}
	if !strings.HasSuffix(command, "\r\n") {
		command += "\r\n"
	}
	_, err := d.serialPort.Write([]byte(command))
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}
