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

// System Control Block registers
// (p129, 4.4 System control block (SCB), PM0056)
const (
	SCB_VTOR = 0xe000ed08

	SCB_AIRCR         = 0xe000ed0c
	AIRCR_VECTKEY     = 16
	AIRCR_PRIGROUP    = 8
	AIRCR_SYSRESETREQ = 2

	// AIRCR writes are ignored without this key
	VECTKEY = 0x05fa
)

// SetVectorTable relocates the vector table to the argument address.
func (cpu *CPU) SetVectorTable(addr uint32) {
	reg.Write(SCB_VTOR, addr)
}

// SetPriorityGrouping configures the interrupt priority group/subgroup split.
func (cpu *CPU) SetPriorityGrouping(group uint32) {
	reg.Write(SCB_AIRCR, VECTKEY<<AIRCR_VECTKEY|(group&0x7)<<AIRCR_PRIGROUP)
}

// Reset requests a system reset (SYSRESETREQ), it does not return.
func (cpu *CPU) Reset() {
	cpu.DataSyncBarrier()
	reg.Write(SCB_AIRCR, VECTKEY<<AIRCR_VECTKEY|1<<AIRCR_SYSRESETREQ)

	for {
	}
}
