// Application runtime for the Blue Pill secure firmware
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package main

import (
	"log"

	"github.com/usbarmory/bluepill-boot/app/command"
	"github.com/usbarmory/bluepill-boot/app/device"
	"github.com/usbarmory/bluepill-boot/app/intake"
	"github.com/usbarmory/bluepill-boot/app/telemetry"
	"github.com/usbarmory/bluepill-boot/board/bluepill"
	"github.com/usbarmory/bluepill-boot/soc/st/adc"
	"github.com/usbarmory/bluepill-boot/soc/st/stm32f103"
)

// DMA targets, statically allocated for the lifetime of the firmware
var (
	rxBuf  [intake.RingSize]byte
	adcBuf [telemetry.SampleCount]uint16
)

func init() {
	log.SetFlags(0)
}

func main() {
	// The takeover prologue (stm32f103.Reinit) has already run during
	// early runtime initialization, before any peripheral setup.
	if err := bluepill.Init(); err != nil {
		panic(err)
	}

	if err := bluepill.InitIO(); err != nil {
		panic(err)
	}

	bluepill.Blink(3, 100, 100)

	console := &bluepill.Console{
		UART: stm32f103.USART2,
		TX:   bluepill.TxChannel,
	}

	console.Write([]byte("READY\r\n"))

	bluepill.RxChannel.Start(stm32f103.USART2.DR(), stm32f103.Addr(rxBuf[:]), len(rxBuf))
	bluepill.ADCChannel.Start(stm32f103.ADC1.DR(), stm32f103.Addr16(adcBuf[:]), len(adcBuf))
	stm32f103.ADC1.Start()

	state := device.NewState()

	handler := &command.Handler{
		State: state,
		LED:   bluepill.Indicator{},
		PWM:   stm32f103.TIM2,
		Reset: stm32f103.ARM.Reset,
		Delay: stm32f103.Delay,
		Out:   console,
	}

	loop := &telemetry.Loop{
		State:   state,
		Voltage: adc.Voltage,
		Out:     console,
	}

	var ring intake.Ring
	var line intake.Line

	for {
		ring.Consume(bluepill.RxChannel.Remaining(), rxBuf[:], func(c byte) {
			state.RxCount++

			if cmd, ok := line.Feed(c); ok {
				handler.Dispatch(cmd)
			}
		})

		loop.Step(stm32f103.Milliseconds(), adcBuf[:])

		// coarse pacing, not relied upon for correctness
		stm32f103.Delay(10)
	}
}
