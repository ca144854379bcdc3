// ARMv7-M processor support
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package arm

import (
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// Data Watchpoint and Trace unit registers
// (p93, C1.8 The Data Watchpoint and Trace unit, ARM DDI 0403E)
const (
	DEMCR        = 0xe000edfc
	DEMCR_TRCENA = 24

	DWT_CTRL       = 0xe0001000
	CTRL_CYCCNTENA = 0

	DWT_CYCCNT = 0xe0001004
)

// EnableCycleCounter starts the DWT cycle counter, used as monotonic time
// source.
func (cpu *CPU) EnableCycleCounter() {
	reg.Set(DEMCR, DEMCR_TRCENA)
	reg.Write(DWT_CYCCNT, 0)
	reg.Set(DWT_CTRL, CTRL_CYCCNTENA)
}

// CycleCount returns the DWT cycle counter value, the 32-bit counter wraps
// silently and callers must account for rollover.
func (cpu *CPU) CycleCount() uint32 {
	return reg.Read(DWT_CYCCNT)
}
