// Telemetry sampling and heartbeat
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package telemetry implements the periodic portion of the application main
// loop: analog input averaging, uptime accounting and the unsolicited
// heartbeat emission.
//
// Cadence bookkeeping uses absolute tick timestamps, occasional overruns
// shift the next deadline rather than accumulating missed periods.
package telemetry

import (
	"fmt"
	"io"

	"github.com/usbarmory/bluepill-boot/app/device"
)

const (
	// SamplePeriod is the analog averaging interval in milliseconds.
	SamplePeriod = 100

	// HeartbeatPeriod is the unsolicited status emission interval in
	// milliseconds.
	HeartbeatPeriod = 5000

	// SampleCount is the analog sample ring length.
	SampleCount = 16
)

// VoltageFn converts a raw analog sample to volts.
type VoltageFn func(raw uint16) float32

// Loop performs the telemetry bookkeeping of the cooperative main loop.
type Loop struct {
	// State is the device state, borrowed from the main loop.
	State *device.State
	// Voltage converts raw samples to volts.
	Voltage VoltageFn
	// Out receives heartbeat emissions.
	Out io.Writer

	lastSample    uint32
	lastHeartbeat uint32
}

// Step advances the telemetry bookkeeping to the argument timestamp, in
// milliseconds since boot, averaging the analog sample ring and emitting the
// heartbeat as their periods elapse.
func (l *Loop) Step(now uint32, samples []uint16) {
	if now-l.lastSample > SamplePeriod {
		var sum uint32

		for _, s := range samples {
			sum += uint32(s)
		}

		l.State.ADCRaw = uint16(sum / uint32(len(samples)))
		l.State.Voltage = l.Voltage(l.State.ADCRaw)

		l.lastSample = now
	}

	if now-l.lastHeartbeat > HeartbeatPeriod {
		fmt.Fprintf(l.Out, "UP:%ds V:%.2f PWM:%d\r\n",
			l.State.Uptime, l.State.Voltage, l.State.PWMDuty)

		l.lastHeartbeat = now
	}

	l.State.Uptime = now / 1000
}
