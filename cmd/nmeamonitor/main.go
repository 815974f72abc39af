// Command nmeamonitor connects to a serial GNSS receiver, decodes its
// NMEA 0183 stream with pkg/nmeacore, and prints each published fix —
// a thin demonstration of the stack end to end, grounded on the
// teacher's cmd/top708reader entry point.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fenwick-gnss/nmeacore/hardware/topgnss/nmeadevice"
	"github.com/fenwick-gnss/nmeacore/pkg/geodesy"
	"github.com/fenwick-gnss/nmeacore/pkg/nmeacore"
	"github.com/fenwick-gnss/nmeacore/pkg/speedconv"
)

var (
	portName  string
	baudRate  int
	timeout   time.Duration
	showPorts bool
	logLevel  string
)

func init() {
	flag.StringVar(&portName, "port", "", "Serial port name (e.g., COM1, /dev/ttyUSB0)")
	flag.IntVar(&baudRate, "baud", 38400, "Baud rate")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "Connection verification timeout")
	flag.BoolVar(&showPorts, "list", false, "List available ports and exit")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		logger.SetLevel(level)
	}

	serialPort := nmeadevice.NewGNSSSerialPort()
	device := nmeadevice.NewDevice(serialPort)
	device.SetLogger(nmeadevice.NewLogrusLogger(logger))

	if showPorts {
		listPorts(serialPort)
		return
	}

	if portName == "" {
		log.Fatal("a -port is required (use -list to enumerate available ports)")
	}

	if err := device.Connect(portName, baudRate); err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer device.Disconnect()

	if !device.VerifyConnection(timeout) {
		logger.Warn("unable to verify NMEA data on this port; continuing anyway")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cfg := nmeacore.Config{EnableGGA: true, EnableRMC: true, EnableGSA: true, EnableGSV: true}
	var last geodesy.Point
	haveLast := false

	sessionID, err := device.MonitorFixes(cfg, 100*time.Millisecond, func(fix nmeacore.Fix, status nmeacore.Status) {
		fmt.Printf("fix: lat=%.6f lon=%.6f alt=%.1fm sats=%d/%d speed=%.1fkn (%.1fkm/h)\n",
			fix.Latitude, fix.Longitude, fix.Altitude, fix.SatellitesUsed, fix.SatellitesInView,
			fix.Speed, speedconv.Convert(fix.Speed, speedconv.KilometersPerHour))

		here := geodesy.Point{Lat: fix.Latitude, Lon: fix.Longitude}
		if haveLast {
			fmt.Printf("  moved %.1fm since last fix, bearing %.0f°\n",
				geodesy.Distance(last, here), geodesy.Bearing(last, here))
		}
		last, haveLast = here, true
	})
	if err != nil {
		log.Fatalf("failed to start monitoring: %v", err)
	}
	logger.Infof("monitoring session %s started, press Ctrl+C to stop", sessionID)

	<-sigChan
	device.StopMonitoring()
	fmt.Println("\nstopped monitoring")
}

func listPorts(serialPort *nmeadevice.GNSSSerialPort) {
	details, err := serialPort.GetPortDetails()
	if err != nil {
		log.Fatalf("error getting port details: %v", err)
	}
	if len(details) == 0 {
		fmt.Println("no serial ports found")
		return
	}
	for i, d := range details {
		if d.IsUSB {
			fmt.Printf("%d. %s - USB [VID:PID=%s:%s] %s\n", i+1, d.Name, d.VID, d.PID, d.Product)
		} else {
			fmt.Printf("%d. %s\n", i+1, d.Name)
		}
	}
}
