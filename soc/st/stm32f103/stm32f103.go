// STM32F103 configuration and support
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package stm32f103 provides support to Go bare metal firmware on the ST
// STM32F103 family of microcontrollers, adopting the following reference
// specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//   - PM0056 - STM32F10xxx/20xxx/21xxx/L1xxxx Cortex-M3 programming manual - Rev 7 2017/03
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package stm32f103

import (
	_ "unsafe"

	"github.com/usbarmory/bluepill-boot/arm"
	"github.com/usbarmory/bluepill-boot/internal/rng"

	"github.com/usbarmory/bluepill-boot/soc/st/adc"
	"github.com/usbarmory/bluepill-boot/soc/st/dma"
	"github.com/usbarmory/bluepill-boot/soc/st/gpio"
	"github.com/usbarmory/bluepill-boot/soc/st/rcc"
	"github.com/usbarmory/bluepill-boot/soc/st/tim"
	"github.com/usbarmory/bluepill-boot/soc/st/usart"
)

// Peripheral registers
const (
	// Reset and Clock Control
	RCC_BASE = 0x40021000

	// General Purpose I/O
	GPIOA_BASE = 0x40010800
	GPIOC_BASE = 0x40011000

	// Direct Memory Access controller
	DMA1_BASE = 0x40020000

	// Serial ports
	USART2_BASE = 0x40004400

	// Analog to Digital Converter
	ADC1_BASE = 0x40012400

	// General purpose timers
	TIM2_BASE = 0x40000000
)

// Internal oscillator frequency
const HSI_CLOCK = 8000000

// Peripheral instances
var (
	// ARMv7-M core
	ARM = &arm.CPU{}

	// Reset and Clock Control
	RCC = &rcc.RCC{
		Base:     RCC_BASE,
		HSIClock: HSI_CLOCK,
	}

	// GPIO port A
	GPIOA = &gpio.GPIO{
		Index:       0,
		Base:        GPIOA_BASE,
		EnableClock: func() { RCC.EnableAPB2(rcc.IOPAEN) },
	}

	// GPIO port C
	GPIOC = &gpio.GPIO{
		Index:       2,
		Base:        GPIOC_BASE,
		EnableClock: func() { RCC.EnableAPB2(rcc.IOPCEN) },
	}

	// DMA controller 1
	DMA1 = &dma.DMA{
		Index:       1,
		Base:        DMA1_BASE,
		EnableClock: func() { RCC.EnableAHB(rcc.DMA1EN) },
	}

	// Serial port 2
	USART2 = &usart.USART{
		Index:       2,
		Base:        USART2_BASE,
		EnableClock: func() { RCC.EnableAPB1(rcc.USART2EN) },
		Clock:       func() uint32 { return RCC.Clock() },
		Baudrate:    usart.USART_DEFAULT_BAUDRATE,
	}

	// Analog to Digital Converter 1
	ADC1 = &adc.ADC{
		Index:       1,
		Base:        ADC1_BASE,
		EnableClock: func() { RCC.EnableAPB2(rcc.ADC1EN) },
	}

	// General purpose timer 2
	TIM2 = &tim.TIM{
		Index:       2,
		Base:        TIM2_BASE,
		EnableClock: func() { RCC.EnableAPB1(rcc.TIM2EN) },
	}
)

// hwinit takes care of the lower level SoC initialization triggered early in
// runtime setup, care must be taken to ensure that no heap allocation is
// performed (e.g. defer is not possible).
//
//go:linkname hwinit runtime.hwinit
func hwinit() {
	// Undo whatever a previous stage left behind before configuring
	// anything, each stage is self-contained against a partially
	// configured predecessor.
	Reinit()

	RCC.Init()
	ARM.Init()
}

//go:linkname initRNG runtime.initRNG
func initRNG() {
	// no TRNG on this SoC
	rng.GetRandomDataFn = rng.GetLCGData
}

//go:linkname nanotime1 runtime.nanotime1
func nanotime1() int64 {
	return int64(Milliseconds()) * 1000000
}
