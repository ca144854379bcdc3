// STM32F1 ADC driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package adc implements a driver for STM32F1 analog to digital converters
// adopting the following reference specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package adc

import (
	"github.com/usbarmory/bluepill-boot/bits"
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// ADC registers
// (p237, 11.12 ADC registers, RM0008)
const (
	ADCx_SR = 0x00

	ADCx_CR1 = 0x04

	ADCx_CR2    = 0x08
	CR2_SWSTART = 22
	CR2_EXTTRIG = 20
	CR2_EXTSEL  = 17
	CR2_DMA     = 8
	CR2_RSTCAL  = 3
	CR2_CAL     = 2
	CR2_CONT    = 1
	CR2_ADON    = 0

	// SWSTART as external event
	EXTSEL_SWSTART = 0b111

	ADCx_SMPR2 = 0x10

	// 55.5 cycles sampling time
	SMP_55_5 = 0b101

	ADCx_SQR1 = 0x2c
	ADCx_SQR3 = 0x34

	ADCx_DR = 0x4c
)

// Full scale conversion range
const (
	// 12-bit resolution
	Max = 4095
	// reference voltage
	VRef = 3.3
)

// ADC represents an analog to digital converter instance.
type ADC struct {
	// Controller index
	Index int
	// Base register
	Base uint32
	// Clock enable function
	EnableClock func()
}

// Init powers up and calibrates the converter for continuous single-channel
// conversion of the argument channel.
func (hw *ADC) Init(channel int) {
	if hw.Base == 0 || hw.EnableClock == nil {
		panic("invalid ADC instance")
	}

	hw.EnableClock()

	// power up from power-down state
	reg.Set(hw.Base+ADCx_CR2, CR2_ADON)

	// reset then start calibration
	reg.Set(hw.Base+ADCx_CR2, CR2_RSTCAL)
	reg.Wait(hw.Base+ADCx_CR2, CR2_RSTCAL, 1, 0)
	reg.Set(hw.Base+ADCx_CR2, CR2_CAL)
	reg.Wait(hw.Base+ADCx_CR2, CR2_CAL, 1, 0)

	// single conversion in the regular sequence
	reg.Write(hw.Base+ADCx_SQR1, 0)
	reg.Write(hw.Base+ADCx_SQR3, uint32(channel))

	if channel <= 9 {
		reg.SetN(hw.Base+ADCx_SMPR2, channel*3, 0b111, SMP_55_5)
	}

	cr2 := reg.Read(hw.Base + ADCx_CR2)
	bits.Set(&cr2, CR2_CONT)
	bits.Set(&cr2, CR2_DMA)
	bits.SetN(&cr2, CR2_EXTSEL, 0b111, EXTSEL_SWSTART)
	bits.Set(&cr2, CR2_EXTTRIG)
	reg.Write(hw.Base+ADCx_CR2, cr2)
}

// DR returns the data register address, used as DMA peripheral target.
func (hw *ADC) DR() uint32 {
	return hw.Base + ADCx_DR
}

// Start begins continuous conversions.
func (hw *ADC) Start() {
	reg.Set(hw.Base+ADCx_CR2, CR2_SWSTART)
}

// Voltage converts a raw sample to volts against the reference voltage.
func Voltage(raw uint16) float32 {
	return float32(raw) * VRef / Max
}
