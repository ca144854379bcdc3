// STM32F1 DMA driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package dma implements a driver for the STM32F1 direct memory access
// controller adopting the following reference specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package dma

import (
	"fmt"

	"github.com/usbarmory/bluepill-boot/bits"
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// DMA registers
// (p277, 13.4 DMA registers, RM0008)
const (
	DMAx_ISR  = 0x00
	DMAx_IFCR = 0x04

	// per-channel register block, 20 bytes starting at 0x08
	DMAx_CCR1 = 0x08

	CCR_MEM2MEM = 14
	CCR_PL      = 12
	CCR_MSIZE   = 10
	CCR_PSIZE   = 8
	CCR_MINC    = 7
	CCR_CIRC    = 5
	CCR_DIR     = 4
	CCR_TCIE    = 1
	CCR_EN      = 0
)

// Transfer sizes
const (
	Size8  = 0b00
	Size16 = 0b01
)

// Priority levels
const (
	PriorityMedium = 0b01
	PriorityHigh   = 0b10
)

// DMA represents a DMA controller instance.
type DMA struct {
	// Controller index
	Index int
	// Base register
	Base uint32
	// Clock enable function
	EnableClock func()

	clk bool
}

// Channel represents a single DMA channel.
type Channel struct {
	num int
	dma uint32

	ccr   uint32
	cndtr uint32
	cpar  uint32
	cmar  uint32

	count int
}

// Channel initializes a DMA channel (1-7).
func (hw *DMA) Channel(num int) (ch *Channel, err error) {
	if hw.Base == 0 {
		return nil, fmt.Errorf("invalid DMA controller instance")
	}

	if num < 1 || num > 7 {
		return nil, fmt.Errorf("invalid DMA channel number %d", num)
	}

	if !hw.clk {
		hw.EnableClock()
		hw.clk = true
	}

	base := hw.Base + DMAx_CCR1 + 20*uint32(num-1)

	ch = &Channel{
		num:   num,
		dma:   hw.Base,
		ccr:   base,
		cndtr: base + 0x04,
		cpar:  base + 0x08,
		cmar:  base + 0x0c,
	}

	return
}

// Init configures the channel transfer direction, element size, circular
// mode and priority. The memory pointer is always incremented, the
// peripheral one never is.
func (ch *Channel) Init(toMemory bool, size uint32, circular bool, priority uint32) {
	var ccr uint32

	bits.SetN(&ccr, CCR_PL, 0b11, priority)
	bits.SetN(&ccr, CCR_MSIZE, 0b11, size)
	bits.SetN(&ccr, CCR_PSIZE, 0b11, size)
	bits.Set(&ccr, CCR_MINC)

	if !toMemory {
		bits.Set(&ccr, CCR_DIR)
	}

	if circular {
		bits.Set(&ccr, CCR_CIRC)
	}

	reg.Write(ch.ccr, ccr)
}

// Start enables the channel for a transfer of count elements between the
// peripheral and memory addresses.
func (ch *Channel) Start(paddr uint32, maddr uint32, count int) {
	reg.Clear(ch.ccr, CCR_EN)

	reg.Write(ch.cpar, paddr)
	reg.Write(ch.cmar, maddr)
	reg.Write(ch.cndtr, uint32(count))

	ch.count = count

	reg.Set(ch.ccr, CCR_EN)
}

// Stop disables the channel.
func (ch *Channel) Stop() {
	reg.Clear(ch.ccr, CCR_EN)
}

// Remaining returns the number of elements left in the current transfer.
func (ch *Channel) Remaining() int {
	return int(reg.Read(ch.cndtr))
}

// TransferComplete returns, and clears, the channel transfer complete flag.
func (ch *Channel) TransferComplete() bool {
	// TCIFx is bit 1 of each 4-bit channel flag group
	pos := 1 + 4*(ch.num-1)

	if reg.Get(ch.dma+DMAx_ISR, pos, 1) == 0 {
		return false
	}

	reg.Write(ch.dma+DMAx_IFCR, 1<<pos)

	return true
}
