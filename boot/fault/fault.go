// Verification failure indication
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fault implements the terminal indication loop entered when
// firmware verification fails, each failure class is signaled with a
// distinct pulse pattern on the board indicator.
package fault

import (
	"github.com/usbarmory/bluepill-boot/boot/verify"
)

// Pulse is a single indicator activation.
type Pulse struct {
	// On is the active time in milliseconds.
	On uint32
	// Off is the idle time in milliseconds.
	Off uint32
}

// Indicator is the board fault signal, open-drain active-low hardware is
// abstracted behind logical on/off.
type Indicator interface {
	On()
	Off()
}

// Pattern returns the pulse sequence signaling a verification failure
// class, repeated forever by Loop:
//
//	BadMagic:        one long pulse
//	BadSize, BadCrc: one long and one short pulse
//	BadHash:         three short pulses
//	BadStackPointer: five short pulses
func Pattern(f verify.Failure) (pattern []Pulse) {
	switch f {
	case verify.BadMagic:
		pattern = []Pulse{{2000, 500}}
	case verify.BadSize, verify.BadCrc:
		pattern = []Pulse{{1000, 200}, {300, 500}}
	default:
		n := 3

		if f == verify.BadStackPointer {
			n = 5
		}

		for i := 0; i < n; i++ {
			pattern = append(pattern, Pulse{200, 200})
		}

		// inter-repetition gap
		pattern[n-1].Off += 1000
	}

	return
}

// Loop signals a verification failure forever, it never returns. The delay
// argument suspends execution for a duration in milliseconds, interrupts are
// expected to remain masked by the caller.
func Loop(f verify.Failure, led Indicator, delay func(ms uint32)) {
	pattern := Pattern(f)

	for {
		for _, pulse := range pattern {
			led.On()
			delay(pulse.On)
			led.Off()
			delay(pulse.Off)
		}
	}
}
