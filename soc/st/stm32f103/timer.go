// STM32F103 configuration and support
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package stm32f103

// DWT cycles per millisecond at the HSI system clock
const cyclesPerMillisecond = HSI_CLOCK / 1000

var (
	lastCycles uint32
	elapsed    uint64
)

// Milliseconds returns the time elapsed since the cycle counter was started.
//
// The 32-bit cycle counter wraps every ~537 seconds at 8 MHz, the counter is
// extended in software and remains monotonic as long as this function is
// invoked more often than the wrap period, which the main loop pacing
// largely exceeds.
func Milliseconds() uint32 {
	cycles := ARM.CycleCount()

	// unsigned subtraction is wrap safe
	elapsed += uint64(cycles - lastCycles)
	lastCycles = cycles

	return uint32(elapsed / cyclesPerMillisecond)
}

// Delay spins for the argument amount of milliseconds.
func Delay(ms uint32) {
	start := Milliseconds()

	for Milliseconds()-start < ms {
		// busy wait on the cycle counter
	}
}
