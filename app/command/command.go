// Serial command protocol
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package command implements the serial command surface of the application
// runtime, routing line oriented text commands as well as an embedded JSON
// dialect over the same port, with the dialect decided per frame.
//
// Replies are single lines terminated by `\r\n`: human readable in the text
// dialect, single-line objects with a status key in the JSON one.
package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/usbarmory/bluepill-boot/app/device"
)

// Output is a logical on/off indicator, active-low hardware is handled by
// the implementation.
type Output interface {
	On()
	Off()
}

// PWM is a pulse-width modulated output.
type PWM interface {
	SetDutyCycle(duty int) error
}

// Handler routes command frames and owns their replies.
type Handler struct {
	// State is the device state, borrowed from the main loop.
	State *device.State
	// LED is the indicator output.
	LED Output
	// PWM is the pulse-width output.
	PWM PWM
	// Reset requests a CPU reset.
	Reset func()
	// Delay suspends execution for a duration in milliseconds.
	Delay func(ms uint32)
	// Out receives replies.
	Out io.Writer
}

// Dispatch routes a single command frame, as produced by the intake line
// accumulator, emitting its reply on the handler output.
func (h *Handler) Dispatch(cmd string) {
	if isJSON(cmd) {
		h.dispatchJSON(cmd)
		return
	}

	h.dispatchText(cmd)
}

func (h *Handler) reply(format string, args ...any) {
	fmt.Fprintf(h.Out, format+"\r\n", args...)
}

func (h *Handler) setLED(on bool) {
	if on {
		h.LED.On()
	} else {
		h.LED.Off()
	}

	h.State.LED = on
}

func (h *Handler) setPWM(duty int) {
	h.PWM.SetDutyCycle(duty)
	h.State.PWMDuty = uint8(duty)
}

func (h *Handler) reset() {
	h.Delay(100)
	h.Reset()
}

func (h *Handler) dispatchText(cmd string) {
	switch {
	case cmd == "PING":
		h.reply("PONG")
	case cmd == "STATUS":
		led := "OFF"

		if h.State.LED {
			led = "ON"
		}

		h.reply("STATUS: OK | LED:%s | UP:%ds | V:%.2fV | PWM:%d%%",
			led, h.State.Uptime, h.State.Voltage, h.State.PWMDuty)
	case cmd == "TEMP":
		h.reply("TEMP: %.1f°C", h.State.Temperature)
	case cmd == "VOLTAGE":
		h.reply("VOLTAGE: %.2fV (ADC:%d)", h.State.Voltage, h.State.ADCRaw)
	case strings.HasPrefix(cmd, "LED="):
		val, _ := strconv.Atoi(cmd[4:])

		if val == 1 {
			h.setLED(true)
			h.reply("OK: LED ON")
		} else {
			h.setLED(false)
			h.reply("OK: LED OFF")
		}
	case strings.HasPrefix(cmd, "PWM="):
		val, err := strconv.Atoi(cmd[4:])

		if err != nil || val < 0 || val > 100 {
			h.reply("ERROR: PWM 0-100")
			break
		}

		h.setPWM(val)
		h.reply("OK: PWM=%d%%", val)
	case cmd == "RESET":
		h.reply("RESETTING...")
		h.reset()
	default:
		h.reply("ERROR: Unknown '%s'", cmd)
	}
}

func (h *Handler) dispatchJSON(cmd string) {
	name, ok := jsonString(cmd, "command")

	if !ok {
		h.reply(`{"status":"error","message":"Invalid JSON"}`)
		return
	}

	switch name {
	case "SET_LED":
		state, ok := jsonParam(cmd, "state")

		if !ok {
			h.reply(`{"status":"error","message":"Missing state"}`)
			break
		}

		if state == 1 {
			h.setLED(true)
			h.reply(`{"status":"ok","message":"LED ON"}`)
		} else {
			h.setLED(false)
			h.reply(`{"status":"ok","message":"LED OFF"}`)
		}
	case "SET_PWM":
		duty, ok := jsonParam(cmd, "duty")

		if !ok {
			h.reply(`{"status":"error","message":"Missing duty"}`)
			break
		}

		if duty < 0 || duty > 100 {
			h.reply(`{"status":"error","message":"PWM 0-100"}`)
			break
		}

		h.setPWM(duty)
		h.reply(`{"status":"ok","message":"PWM=%d%%"}`, duty)
	case "GET_TEMP":
		h.reply(`{"status":"ok","temperature":%.1f}`, h.State.Temperature)
	case "GET_VOLTAGE":
		h.reply(`{"status":"ok","voltage":%.2f,"adc_raw":%d}`,
			h.State.Voltage, h.State.ADCRaw)
	case "STATUS":
		h.reply(`{"status":"ok","led":%t,"uptime":%d,"voltage":%.2f,"pwm":%d}`,
			h.State.LED, h.State.Uptime, h.State.Voltage, h.State.PWMDuty)
	case "RESET":
		h.reply(`{"status":"ok","message":"Resetting..."}`)
		h.reset()
	default:
		h.reply(`{"status":"error","message":"Unknown: %s"}`, name)
	}
}
