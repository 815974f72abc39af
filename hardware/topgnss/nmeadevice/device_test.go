package nmeadevice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSerialPort mocks SerialPort, grounded on the teacher's
// hardware/topgnss/top708 MockSerialPort.
type MockSerialPort struct {
	mock.Mock
	connected bool
	data      []byte
}

func (p *MockSerialPort) Open(portName string, baudRate int) error {
	args := p.Called(portName, baudRate)
	if args.Error(0) == nil {
		p.connected = true
	}
	return args.Error(0)
}

func (p *MockSerialPort) Close() error {
	args := p.Called()
	p.connected = false
	return args.Error(0)
}

func (p *MockSerialPort) Read(buffer []byte) (int, error) {
	args := p.Called(buffer)
	if !p.connected {
		return 0, errors.New("port not open")
	}
	if len(p.data) == 0 {
		return 0, nil
	}
	n := copy(buffer, p.data)
	return n, args.Error(1)
}

func (p *MockSerialPort) Write(data []byte) (int, error) {
	args := p.Called(data)
	if !p.connected {
		return 0, errors.New("port not open")
	}
	return args.Int(0), args.Error(1)
}

func (p *MockSerialPort) SetReadTimeout(timeout time.Duration) error {
	args := p.Called(timeout)
	return args.Error(0)
}

func (p *MockSerialPort) ListPorts() ([]string, error) {
	args := p.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (p *MockSerialPort) GetPortDetails() ([]PortDetail, error) {
	args := p.Called()
	return args.Get(0).([]PortDetail), args.Error(1)
}

func TestNewDevice(t *testing.T) {
	port := new(MockSerialPort)
	device := NewDevice(port)

	assert.NotNil(t, device)
	assert.Equal(t, port, device.serialPort)
	assert.False(t, device.connected)
}

func TestDeviceConnect(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(nil)

	device := NewDevice(port)
	err := device.Connect("COM1", 38400)

	assert.NoError(t, err)
	assert.True(t, device.IsConnected())
	port.AssertCalled(t, "Open", "COM1", 38400)
}

func TestDeviceConnectRetriesThenFails(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(errors.New("open error"))

	device := NewDevice(port)
	device.SetRetryOptions(2, time.Millisecond)

	err := device.Connect("COM1", 38400)

	assert.Error(t, err)
	assert.False(t, device.IsConnected())
	assert.Contains(t, err.Error(), "failed to connect to device after 3 attempts")
	port.AssertNumberOfCalls(t, "Open", 3)
}

func TestDeviceConnectAlreadyConnected(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(nil)

	device := NewDevice(port)
	require := assert.New(t)
	require.NoError(device.Connect("COM1", 38400))

	err := device.Connect("COM1", 38400)
	require.Error(err)
}

func TestDeviceDisconnect(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(nil)
	port.On("Close").Return(nil)

	device := NewDevice(port)
	_ = device.Connect("COM1", 38400)

	err := device.Disconnect()

	assert.NoError(t, err)
	assert.False(t, device.IsConnected())
	port.AssertCalled(t, "Close")
}

func TestDeviceDisconnectError(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(nil)
	port.On("Close").Return(errors.New("close error"))

	device := NewDevice(port)
	_ = device.Connect("COM1", 38400)

	err := device.Disconnect()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error disconnecting device")
}

func TestDeviceVerifyConnection(t *testing.T) {
	port := new(MockSerialPort)
	port.connected = true
	port.data = []byte("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n")
	port.On("Read", mock.Anything).Return(len(port.data), nil)

	device := NewDevice(port)
	device.connected = true

	assert.True(t, device.VerifyConnection(100*time.Millisecond))
}

func TestDeviceVerifyConnectionNotConnected(t *testing.T) {
	port := new(MockSerialPort)
	device := NewDevice(port)

	assert.False(t, device.VerifyConnection(100*time.Millisecond))
}

func TestDeviceWriteCommandNotConnected(t *testing.T) {
	port := new(MockSerialPort)
	device := NewDevice(port)

	err := device.WriteCommand("PMTK314")
	assert.Error(t, err)
}

func TestDeviceWriteCommandAppendsCRLF(t *testing.T) {
	port := new(MockSerialPort)
	port.On("Open", "COM1", 38400).Return(nil)
	port.On("Write", []byte("PMTK314\r\n")).Return(9, nil)

	device := NewDevice(port)
	_ = device.Connect("COM1", 38400)

	err := device.WriteCommand("PMTK314")
	assert.NoError(t, err)
	port.AssertCalled(t, "Write", []byte("PMTK314\r\n"))
}
