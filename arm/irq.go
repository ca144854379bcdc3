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

// defined in irq.s
func irq_enable()
func irq_disable()

// EnableInterrupts unmasks configurable priority exceptions (PRIMASK clear).
func (cpu *CPU) EnableInterrupts() {
	irq_enable()
}

// DisableInterrupts masks all configurable priority exceptions (PRIMASK set).
func (cpu *CPU) DisableInterrupts() {
	irq_disable()
}
