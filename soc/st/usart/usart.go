// STM32F1 USART driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package usart implements a driver for STM32F1 universal synchronous
// asynchronous receiver transmitters adopting the following reference
// specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package usart

import (
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// USART registers
// (p817, 27.6 USART registers, RM0008)
const (
	USART_DEFAULT_BAUDRATE = 115200

	USARTx_SR = 0x00
	SR_TXE    = 7
	SR_TC     = 6
	SR_RXNE   = 5

	USARTx_DR  = 0x04
	USARTx_BRR = 0x08

	USARTx_CR1 = 0x0c
	CR1_UE     = 13
	CR1_TE     = 3
	CR1_RE     = 2

	USARTx_CR2 = 0x10

	USARTx_CR3 = 0x14
	CR3_DMAT   = 7
	CR3_DMAR   = 6
)

// USART represents a serial port instance.
type USART struct {
	// Controller index
	Index int
	// Base register
	Base uint32
	// Clock enable function
	EnableClock func()
	// Clock retrieval function
	Clock func() uint32
	// Port speed
	Baudrate uint32

	sr  uint32
	dr  uint32
	brr uint32
	cr1 uint32
	cr3 uint32
}

// Init initializes and enables the USART for 8-N-1 operation without
// hardware flow control.
func (hw *USART) Init() {
	if hw.Base == 0 || hw.Clock == nil || hw.EnableClock == nil {
		panic("invalid USART instance")
	}

	if hw.Baudrate == 0 {
		hw.Baudrate = USART_DEFAULT_BAUDRATE
	}

	hw.sr = hw.Base + USARTx_SR
	hw.dr = hw.Base + USARTx_DR
	hw.brr = hw.Base + USARTx_BRR
	hw.cr1 = hw.Base + USARTx_CR1
	hw.cr3 = hw.Base + USARTx_CR3

	hw.EnableClock()

	// oversampling by 16, USARTDIV = fCK / baud rate
	reg.Write(hw.brr, hw.Clock()/hw.Baudrate)

	// word length, parity and stop bits stay at reset values (8-N-1)
	reg.Write(hw.cr1, 1<<CR1_UE|1<<CR1_TE|1<<CR1_RE)
}

// EnableDMA enables DMA requests for reception and transmission.
func (hw *USART) EnableDMA(rx bool, tx bool) {
	if rx {
		reg.Set(hw.cr3, CR3_DMAR)
	}

	if tx {
		reg.Set(hw.cr3, CR3_DMAT)
	}
}

// DR returns the data register address, used as DMA peripheral target.
func (hw *USART) DR() uint32 {
	return hw.dr
}

// TxDone returns whether the last transmission is complete.
func (hw *USART) TxDone() bool {
	return reg.Get(hw.sr, SR_TC, 1) == 1
}

// Tx transmits a single character to the serial port.
func (hw *USART) Tx(c byte) {
	for reg.Get(hw.sr, SR_TXE, 1) == 0 {
		// wait for TX FIFO to have room for a character
	}

	reg.Write(hw.dr, uint32(c))
}

// Rx receives a single character from the serial port, the return boolean
// indicates whether a character was available.
func (hw *USART) Rx() (c byte, valid bool) {
	if reg.Get(hw.sr, SR_RXNE, 1) == 0 {
		return
	}

	return byte(reg.Read(hw.dr) & 0xff), true
}

// Write transmits the argument bytes one character at a time, it always
// returns the full length with no error.
func (hw *USART) Write(buf []byte) (n int, _ error) {
	for n = 0; n < len(buf); n++ {
		hw.Tx(buf[n])
	}

	return
}
