// Verified image handoff
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package handoff implements the transfer of execution to a verified
// firmware image.
//
// The sequence deliberately leaves clock and peripheral enable registers
// untouched, restoring those is the next stage responsibility (see
// stm32f103.Reinit), keeping each stage self-contained against a partially
// configured predecessor.
package handoff

import (
	"github.com/usbarmory/bluepill-boot/arm"
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// Boot quiesces interrupts, relocates the vector table to the image base,
// loads the image initial stack pointer and branches to its reset entry
// point. It never returns.
//
// The image must have been verified beforehand (see boot/verify).
func Boot(cpu *arm.CPU, imgBase uint32) {
	cpu.DisableInterrupts()

	cpu.SysTickDisable()
	cpu.IRQDisableAll()
	cpu.IRQClearPendingAll()

	cpu.SetVectorTable(imgBase)
	cpu.Barrier()

	msp := reg.Read(imgBase)
	entry := reg.Read(imgBase + 4)

	cpu.Exec(msp, entry)
}
