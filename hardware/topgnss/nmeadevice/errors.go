package nmeadevice

import "errors"

var (
	errNotConnected      = errors.New("device not connected")
	errAlreadyMonitoring = errors.New("monitoring session already active")
)
