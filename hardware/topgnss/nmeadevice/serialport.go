package nmeadevice

import (
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortDetail describes one enumerated serial port.
type PortDetail struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Product string
}

// SerialPort is the byte-transport seam the device driver depends on,
// matching go.bug.st/serial's surface closely enough that GNSSSerialPort
// below is a thin adapter, and narrow enough to be mocked in tests.
type SerialPort interface {
	Open(portName string, baudRate int) error
	Close() error
	Read(buffer []byte) (int, error)
	Write(data []byte) (int, error)
	SetReadTimeout(timeout time.Duration) error
	ListPorts() ([]string, error)
	GetPortDetails() ([]PortDetail, error)
}

// GNSSSerialPort implements SerialPort over go.bug.st/serial.
type GNSSSerialPort struct {
	port    serial.Port
	timeout time.Duration
}

// NewGNSSSerialPort returns a SerialPort backed by the real UART.
func NewGNSSSerialPort() *GNSSSerialPort {
	return &GNSSSerialPort{timeout: 200 * time.Millisecond}
}

func (g *GNSSSerialPort) Open(portName string, baudRate int) error {
	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return err
	}
	if err := port.SetReadTimeout(g.timeout); err != nil {
		port.Close()
		return err
	}
	g.port = port
	return nil
}

func (g *GNSSSerialPort) Close() error {
	if g.port == nil {
		return nil
	}
	return g.port.Close()
}

func (g *GNSSSerialPort) Read(buffer []byte) (int, error) {
	return g.port.Read(buffer)
}

func (g *GNSSSerialPort) Write(data []byte) (int, error) {
	return g.port.Write(data)
}

func (g *GNSSSerialPort) SetReadTimeout(timeout time.Duration) error {
	g.timeout = timeout
	if g.port == nil {
		return nil
	}
	return g.port.SetReadTimeout(timeout)
}

func (g *GNSSSerialPort) ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

func (g *GNSSSerialPort) GetPortDetails() ([]PortDetail, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	details := make([]PortDetail, 0, len(ports))
	for _, p := range ports {
		details = append(details, PortDetail{
			Name:    p.Name,
			IsUSB:   p.IsUSB,
			VID:     p.VID,
			PID:     p.PID,
			Product: p.Product,
		})
	}
	return details, nil
}
