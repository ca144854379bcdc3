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

// defined in exec.s
func exec(msp uint32, entry uint32)

// Exec loads the argument main stack pointer and branches to the entry
// point, it does not return.
//
// The caller is responsible for quiescing interrupts and relocating the
// vector table beforehand.
func (cpu *CPU) Exec(msp uint32, entry uint32) {
	exec(msp, entry)
}
