// STM32F1 RCC (Reset and Clock Control) driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package rcc implements a driver for the STM32F1 reset and clock controller
// adopting the following reference specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package rcc

import (
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// RCC registers
// (p99, 8.3 RCC registers, RM0008)
const (
	RCCx_CR   = 0x00
	CR_HSIRDY = 1
	CR_HSION  = 0

	// post-reset value (HSI on and ready, default trim)
	CR_RESET = 0x00000083

	RCCx_CFGR = 0x04
	CFGR_SWS  = 2
	CFGR_SW   = 0

	// system clock sources
	SW_HSI = 0b00

	RCCx_CIR      = 0x08
	RCCx_APB2RSTR = 0x0c
	RCCx_APB1RSTR = 0x10

	RCCx_AHBENR = 0x14
	// post-reset value (SRAM and flash interface clocks on)
	AHBENR_RESET = 0x00000014

	RCCx_APB2ENR = 0x18
	RCCx_APB1ENR = 0x1c
)

// AHB peripheral clock enable gates
// (p146, 8.3.6 AHB peripheral clock enable register (RCC_AHBENR), RM0008)
const (
	DMA1EN = 0
)

// APB2 peripheral clock enable gates
// (p147, 8.3.7 APB2 peripheral clock enable register (RCC_APB2ENR), RM0008)
const (
	IOPAEN = 2
	IOPBEN = 3
	IOPCEN = 4
	ADC1EN = 9
)

// APB1 peripheral clock enable gates
// (p149, 8.3.8 APB1 peripheral clock enable register (RCC_APB1ENR), RM0008)
const (
	TIM2EN   = 0
	USART2EN = 17
)

// RCC represents the reset and clock controller instance.
type RCC struct {
	// Base register
	Base uint32

	// HSI oscillator frequency
	HSIClock uint32
}

// Init switches the system clock to the internal oscillator with undivided
// AHB and APB clocks.
func (hw *RCC) Init() {
	if hw.Base == 0 {
		panic("invalid RCC instance")
	}

	reg.Set(hw.Base+RCCx_CR, CR_HSION)

	// Init runs before the Go runtime is ready, a plain spin is
	// required (reg.Wait would yield). The HSI is the boot clock and
	// is already stable on a cold start.
	for reg.Get(hw.Base+RCCx_CR, CR_HSIRDY, 1) == 0 {
	}

	// HSI as system clock, all prescalers at reset defaults (/1)
	reg.SetN(hw.Base+RCCx_CFGR, CFGR_SW, 0b11, SW_HSI)
}

// Reset restores the clock tree to its post-reset state, pulses the
// peripheral reset registers on both APB buses and gates off all peripheral
// clocks.
func (hw *RCC) Reset() {
	reg.Write(hw.Base+RCCx_CR, CR_RESET)
	reg.Write(hw.Base+RCCx_CFGR, 0)
	reg.Write(hw.Base+RCCx_CIR, 0)
	reg.Write(hw.Base+RCCx_AHBENR, AHBENR_RESET)

	reg.Write(hw.Base+RCCx_APB2RSTR, 0xffffffff)
	reg.Write(hw.Base+RCCx_APB2RSTR, 0)
	reg.Write(hw.Base+RCCx_APB1RSTR, 0xffffffff)
	reg.Write(hw.Base+RCCx_APB1RSTR, 0)

	reg.Write(hw.Base+RCCx_APB2ENR, 0)
	reg.Write(hw.Base+RCCx_APB1ENR, 0)
}

// EnableAHB ungates an AHB peripheral clock.
func (hw *RCC) EnableAHB(gate int) {
	reg.Set(hw.Base+RCCx_AHBENR, gate)
}

// EnableAPB1 ungates an APB1 peripheral clock.
func (hw *RCC) EnableAPB1(gate int) {
	reg.Set(hw.Base+RCCx_APB1ENR, gate)
}

// EnableAPB2 ungates an APB2 peripheral clock.
func (hw *RCC) EnableAPB2(gate int) {
	reg.Set(hw.Base+RCCx_APB2ENR, gate)
}

// Clock returns the system clock frequency, prescalers are kept at /1 by
// Init therefore AHB and APB clocks are identical to it.
func (hw *RCC) Clock() uint32 {
	return hw.HSIClock
}
