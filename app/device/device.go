// Device state
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package device holds the application runtime state record.
//
// A single State instance is created on boot, owned by the main loop and
// borrowed by the command dispatcher and telemetry routines, all running on
// the same thread.
package device

// State is the application runtime state.
type State struct {
	// Temperature is the measured temperature (°C).
	Temperature float32
	// Voltage is the averaged input voltage (V).
	Voltage float32
	// ADCRaw is the last averaged raw ADC reading.
	ADCRaw uint16
	// PWMDuty is the current PWM duty cycle percentage (0-100).
	PWMDuty uint8
	// LED is the indicator logical state.
	LED bool
	// Uptime is the time since boot in seconds.
	Uptime uint32
	// RxCount counts bytes received on the serial port.
	RxCount uint32
}

// NewState returns the boot-time device state.
func NewState() *State {
	return &State{
		Temperature: 25.0,
	}
}
