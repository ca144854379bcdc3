// STM32F1 timer driver
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package tim implements a PWM driver for STM32F1 general purpose timers
// adopting the following reference specifications:
//   - RM0008 - STM32F101xx/102xx/103xx/105xx/107xx Reference Manual - Rev 21 2021/02
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package tim

import (
	"fmt"

	"github.com/usbarmory/bluepill-boot/bits"
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// General purpose timer registers
// (p404, 15.4 TIMx registers, RM0008)
const (
	TIMx_CR1 = 0x00
	CR1_ARPE = 7
	CR1_CEN  = 0

	TIMx_EGR = 0x14
	EGR_UG   = 0

	TIMx_CCMR1  = 0x18
	CCMR1_OC2M  = 12
	CCMR1_OC2PE = 11

	// PWM mode 1
	OCM_PWM1 = 0b110

	TIMx_CCER = 0x20
	CCER_CC2E = 4

	TIMx_PSC  = 0x28
	TIMx_ARR  = 0x2c
	TIMx_CCR2 = 0x38
)

// TIM represents a general purpose timer instance.
type TIM struct {
	// Controller index
	Index int
	// Base register
	Base uint32
	// Clock enable function
	EnableClock func()

	period uint32
}

// InitPWM configures channel 2 for PWM mode 1 output with the argument
// prescaler and auto-reload period, starting with a zero compare value.
func (hw *TIM) InitPWM(prescaler uint32, period uint32) {
	if hw.Base == 0 || hw.EnableClock == nil {
		panic("invalid TIM instance")
	}

	hw.EnableClock()
	hw.period = period

	reg.Write(hw.Base+TIMx_PSC, prescaler)
	reg.Write(hw.Base+TIMx_ARR, period)
	reg.Write(hw.Base+TIMx_CCR2, 0)

	ccmr1 := reg.Read(hw.Base + TIMx_CCMR1)
	bits.SetN(&ccmr1, CCMR1_OC2M, 0b111, OCM_PWM1)
	bits.Set(&ccmr1, CCMR1_OC2PE)
	reg.Write(hw.Base+TIMx_CCMR1, ccmr1)

	reg.Set(hw.Base+TIMx_CCER, CCER_CC2E)
	reg.Set(hw.Base+TIMx_CR1, CR1_ARPE)

	// load prescaler and auto-reload values
	reg.Set(hw.Base+TIMx_EGR, EGR_UG)

	reg.Set(hw.Base+TIMx_CR1, CR1_CEN)
}

// SetDutyCycle updates the channel 2 compare value to the argument duty
// cycle percentage.
func (hw *TIM) SetDutyCycle(duty int) error {
	if duty < 0 || duty > 100 {
		return fmt.Errorf("invalid duty cycle %d", duty)
	}

	reg.Write(hw.Base+TIMx_CCR2, uint32(duty)*hw.period/100)

	return nil
}
