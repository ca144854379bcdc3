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

// NVIC registers
// (p118, 4.2 Nested vectored interrupt controller (NVIC), PM0056)
const (
	NVIC_ISER0 = 0xe000e100
	NVIC_ICER0 = 0xe000e180
	NVIC_ISPR0 = 0xe000e200
	NVIC_ICPR0 = 0xe000e280

	// interrupt controller register banks
	NVIC_BANKS = 8
)

// IRQDisableAll writes all-ones to every interrupt clear-enable register
// bank, disabling all external interrupts.
func (cpu *CPU) IRQDisableAll() {
	for i := uint32(0); i < NVIC_BANKS; i++ {
		reg.Write(NVIC_ICER0+4*i, 0xffffffff)
	}
}

// IRQClearPendingAll writes all-ones to every interrupt clear-pending
// register bank, clearing all pending external interrupts.
func (cpu *CPU) IRQClearPendingAll() {
	for i := uint32(0); i < NVIC_BANKS; i++ {
		reg.Write(NVIC_ICPR0+4*i, 0xffffffff)
	}
}

// EnableIRQ enables a single external interrupt line.
func (cpu *CPU) EnableIRQ(n int) {
	reg.Write(NVIC_ISER0+4*uint32(n/32), 1<<(n%32))
}

// DisableIRQ disables a single external interrupt line.
func (cpu *CPU) DisableIRQ(n int) {
	reg.Write(NVIC_ICER0+4*uint32(n/32), 1<<(n%32))
}
