// STM32F1 GPIO driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package gpio implements a driver for STM32F1 general purpose I/O ports
// adopting the following reference specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package gpio

import (
	"fmt"

	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// GPIO registers
// (p171, 9.2 GPIO registers, RM0008)
const (
	GPIOx_CRL  = 0x00
	GPIOx_CRH  = 0x04
	GPIOx_IDR  = 0x08
	GPIOx_BSRR = 0x10
	GPIOx_BRR  = 0x14
)

// Pin configurations, 4-bit CNF/MODE nibbles
// (p172, 9.2.1 Port configuration register low (GPIOx_CRL), RM0008)
const (
	ModeAnalog        = 0b0000
	ModeInputFloating = 0b0100
	ModeOutput        = 0b0011 // push-pull, 50 MHz
	ModeAltFunction   = 0b1011 // alternate function push-pull, 50 MHz
)

// GPIO represents a GPIO port instance.
type GPIO struct {
	// Port index (0: A, 1: B, ...)
	Index int
	// Base register
	Base uint32
	// Clock enable function
	EnableClock func()

	clk bool
}

// Pin represents a single port pin.
type Pin struct {
	num  int
	base uint32
}

// Init initializes a port pin with the given CNF/MODE configuration.
func (hw *GPIO) Init(num int, mode uint32) (pin *Pin, err error) {
	if hw.Base == 0 {
		return nil, fmt.Errorf("invalid GPIO port instance")
	}

	if num > 15 {
		return nil, fmt.Errorf("invalid GPIO pin number %d", num)
	}

	if !hw.clk {
		hw.EnableClock()
		hw.clk = true
	}

	pin = &Pin{
		num:  num,
		base: hw.Base,
	}

	cr := hw.Base + GPIOx_CRL
	pos := num * 4

	if num > 7 {
		cr = hw.Base + GPIOx_CRH
		pos = (num - 8) * 4
	}

	reg.SetN(cr, pos, 0b1111, mode)

	return
}

// High configures the pin signal as high.
func (pin *Pin) High() {
	reg.Write(pin.base+GPIOx_BSRR, 1<<pin.num)
}

// Low configures the pin signal as low.
func (pin *Pin) Low() {
	reg.Write(pin.base+GPIOx_BRR, 1<<pin.num)
}

// Value returns the pin signal level.
func (pin *Pin) Value() (high bool) {
	return reg.Get(pin.base+GPIOx_IDR, pin.num, 1) == 1
}
