// Blue Pill (STM32F103C8) board support
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package bluepill provides hardware initialization for firmware running on
// the Blue Pill development board, based on the STM32F103C8 microcontroller.
//
// The following serial command wiring is used:
//   - PA0: analog input (ADC1 channel 0)
//   - PA1: pulse-width output (TIM2 channel 2)
//   - PA2: USART2 TX
//   - PA3: USART2 RX
//   - PC13: indicator LED (open-drain, active low)
package bluepill

import (
	"github.com/usbarmory/bluepill-boot/soc/st/dma"
	"github.com/usbarmory/bluepill-boot/soc/st/gpio"
	"github.com/usbarmory/bluepill-boot/soc/st/stm32f103"
)

// Flash layout
//
// The first stage loader occupies the first two flash pages, the application
// image region follows, the metadata record sits in the second-to-last page.
const (
	// BOOT_SIZE is the flash area reserved to the first stage loader.
	BOOT_SIZE = 0x2000

	// IMG_BASE is the application image region start address.
	IMG_BASE = stm32f103.FLASH_BASE + BOOT_SIZE

	// IMG_MAX is the application image region length.
	IMG_MAX = 0xc000

	// META_BASE is the metadata record address.
	META_BASE = stm32f103.FLASH_BASE + stm32f103.FLASH_SIZE - 2*stm32f103.FLASH_PAGE_SIZE
)

// Peripheral wiring
const (
	// indicator LED
	LED_PIN = 13

	// analog input
	ADC_PIN     = 0
	ADC_CHANNEL = 0

	// pulse-width output
	PWM_PIN = 1

	// serial port
	UART_TX_PIN = 2
	UART_RX_PIN = 3

	// TIM2 PWM configuration (1 kHz at 8 MHz / (7+1) / (999+1))
	PWM_PRESCALER = 7
	PWM_PERIOD    = 999
)

// DMA1 channel assignments
// (p282, Table 78 Summary of DMA1 requests for each channel, RM0008)
const (
	DMA_ADC_CHANNEL = 1
	DMA_RX_CHANNEL  = 6
	DMA_TX_CHANNEL  = 7
)

var (
	led *gpio.Pin

	// ADC sample transfer channel
	ADCChannel *dma.Channel
	// USART2 receive channel
	RxChannel *dma.Channel
	// USART2 transmit channel
	TxChannel *dma.Channel
)

// Init takes care of the minimal board bring-up common to both firmware
// stages: the indicator LED and the console serial port.
func Init() (err error) {
	// general purpose open-drain output (CNF 01), 50 MHz
	if led, err = stm32f103.GPIOC.Init(LED_PIN, 0b0111); err != nil {
		return
	}

	// off at rest (active low)
	led.High()

	if _, err = stm32f103.GPIOA.Init(UART_TX_PIN, gpio.ModeAltFunction); err != nil {
		return
	}

	if _, err = stm32f103.GPIOA.Init(UART_RX_PIN, gpio.ModeInputFloating); err != nil {
		return
	}

	stm32f103.USART2.Init()

	return
}

// InitIO takes care of the application runtime bring-up: analog input,
// pulse-width output and the serial DMA channels.
func InitIO() (err error) {
	if _, err = stm32f103.GPIOA.Init(ADC_PIN, gpio.ModeAnalog); err != nil {
		return
	}

	if _, err = stm32f103.GPIOA.Init(PWM_PIN, gpio.ModeAltFunction); err != nil {
		return
	}

	stm32f103.USART2.EnableDMA(true, true)

	if ADCChannel, err = stm32f103.DMA1.Channel(DMA_ADC_CHANNEL); err != nil {
		return
	}

	if RxChannel, err = stm32f103.DMA1.Channel(DMA_RX_CHANNEL); err != nil {
		return
	}

	if TxChannel, err = stm32f103.DMA1.Channel(DMA_TX_CHANNEL); err != nil {
		return
	}

	ADCChannel.Init(true, dma.Size16, true, dma.PriorityMedium)
	RxChannel.Init(true, dma.Size8, true, dma.PriorityHigh)
	TxChannel.Init(false, dma.Size8, false, dma.PriorityHigh)

	stm32f103.ADC1.Init(ADC_CHANNEL)
	stm32f103.TIM2.InitPWM(PWM_PRESCALER, PWM_PERIOD)

	return
}

// LED switches the indicator on or off, the pin is driven low when active.
func LED(on bool) {
	if on {
		led.Low()
	} else {
		led.High()
	}
}

// Indicator adapts the board LED to a logical on/off output.
type Indicator struct{}

// On switches the indicator on.
func (Indicator) On() { LED(true) }

// Off switches the indicator off.
func (Indicator) Off() { LED(false) }

// Blink pulses the indicator count times.
func Blink(count int, on uint32, off uint32) {
	for i := 0; i < count; i++ {
		LED(true)
		stm32f103.Delay(on)
		LED(false)

		if i < count-1 {
			stm32f103.Delay(off)
		}
	}
}
