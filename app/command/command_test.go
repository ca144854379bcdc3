// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbarmory/bluepill-boot/app/device"
)

type testLED struct {
	on bool
}

func (l *testLED) On()  { l.on = true }
func (l *testLED) Off() { l.on = false }

type testPWM struct {
	duty []int
}

func (p *testPWM) SetDutyCycle(duty int) error {
	p.duty = append(p.duty, duty)
	return nil
}

type testRig struct {
	handler *Handler
	led     *testLED
	pwm     *testPWM
	out     *bytes.Buffer

	resets int
	delays []uint32
}

func newRig() *testRig {
	rig := &testRig{
		led: &testLED{},
		pwm: &testPWM{},
		out: &bytes.Buffer{},
	}

	rig.handler = &Handler{
		State: device.NewState(),
		LED:   rig.led,
		PWM:   rig.pwm,
		Reset: func() { rig.resets++ },
		Delay: func(ms uint32) { rig.delays = append(rig.delays, ms) },
		Out:   rig.out,
	}

	return rig
}

func (rig *testRig) dispatch(cmd string) string {
	rig.out.Reset()
	rig.handler.Dispatch(cmd)

	return rig.out.String()
}

func TestPing(t *testing.T) {
	assert.Equal(t, "PONG\r\n", newRig().dispatch("PING"))
}

func TestStatus(t *testing.T) {
	rig := newRig()

	rig.handler.State.Uptime = 42
	rig.handler.State.Voltage = 1.65
	rig.handler.State.PWMDuty = 50
	rig.handler.State.LED = true

	assert.Equal(t, "STATUS: OK | LED:ON | UP:42s | V:1.65V | PWM:50%\r\n",
		rig.dispatch("STATUS"))
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, "TEMP: 25.0°C\r\n", newRig().dispatch("TEMP"))
}

func TestVoltage(t *testing.T) {
	rig := newRig()

	rig.handler.State.Voltage = 0.81
	rig.handler.State.ADCRaw = 1000

	assert.Equal(t, "VOLTAGE: 0.81V (ADC:1000)\r\n", rig.dispatch("VOLTAGE"))
}

func TestLED(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "OK: LED ON\r\n", rig.dispatch("LED=1"))
	assert.True(t, rig.led.on)
	assert.True(t, rig.handler.State.LED)

	assert.Equal(t, "OK: LED OFF\r\n", rig.dispatch("LED=0"))
	assert.False(t, rig.led.on)
	assert.False(t, rig.handler.State.LED)

	// anything but 1 switches off
	assert.Equal(t, "OK: LED OFF\r\n", rig.dispatch("LED=x"))
}

func TestPWM(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "OK: PWM=42%\r\n", rig.dispatch("PWM=42"))
	assert.Equal(t, []int{42}, rig.pwm.duty)
	assert.Equal(t, uint8(42), rig.handler.State.PWMDuty)
}

func TestPWMBounds(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "OK: PWM=0%\r\n", rig.dispatch("PWM=0"))
	assert.Equal(t, "OK: PWM=100%\r\n", rig.dispatch("PWM=100"))
	assert.Equal(t, "ERROR: PWM 0-100\r\n", rig.dispatch("PWM=101"))
	assert.Equal(t, "ERROR: PWM 0-100\r\n", rig.dispatch("PWM=-1"))
	assert.Equal(t, "ERROR: PWM 0-100\r\n", rig.dispatch("PWM=x"))

	assert.Equal(t, []int{0, 100}, rig.pwm.duty)
}

func TestPWMIdempotence(t *testing.T) {
	rig := newRig()

	first := rig.dispatch("PWM=42")
	state := *rig.handler.State

	assert.Equal(t, first, rig.dispatch("PWM=42"))
	assert.Equal(t, state, *rig.handler.State)
}

func TestReset(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "RESETTING...\r\n", rig.dispatch("RESET"))
	assert.Equal(t, []uint32{100}, rig.delays)
	assert.Equal(t, 1, rig.resets)
}

func TestUnknown(t *testing.T) {
	assert.Equal(t, "ERROR: Unknown 'FOO'\r\n", newRig().dispatch("FOO"))

	// commands are case-sensitive
	assert.Equal(t, "ERROR: Unknown 'ping'\r\n", newRig().dispatch("ping"))
}

func TestJSONSetPWM(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "{\"status\":\"ok\",\"message\":\"PWM=42%\"}\r\n",
		rig.dispatch(`{"command":"SET_PWM","params":{"duty":42}}`))
	assert.Equal(t, []int{42}, rig.pwm.duty)
}

func TestJSONSetPWMBounds(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "{\"status\":\"error\",\"message\":\"PWM 0-100\"}\r\n",
		rig.dispatch(`{"command":"SET_PWM","params":{"duty":150}}`))
	assert.Equal(t, "{\"status\":\"error\",\"message\":\"PWM 0-100\"}\r\n",
		rig.dispatch(`{"command":"SET_PWM","params":{"duty":-1}}`))
	assert.Equal(t, "{\"status\":\"error\",\"message\":\"Missing duty\"}\r\n",
		rig.dispatch(`{"command":"SET_PWM","params":{"duty":x}}`))
	assert.Equal(t, "{\"status\":\"error\",\"message\":\"Missing duty\"}\r\n",
		rig.dispatch(`{"command":"SET_PWM"}`))

	assert.Empty(t, rig.pwm.duty)
	assert.Zero(t, rig.handler.State.PWMDuty)
}

func TestJSONSetLED(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "{\"status\":\"ok\",\"message\":\"LED ON\"}\r\n",
		rig.dispatch(`{"command":"SET_LED","params":{"state":1}}`))
	assert.True(t, rig.led.on)

	assert.Equal(t, "{\"status\":\"ok\",\"message\":\"LED OFF\"}\r\n",
		rig.dispatch(`{"command":"SET_LED","params":{"state":0}}`))
	assert.False(t, rig.led.on)

	assert.Equal(t, "{\"status\":\"error\",\"message\":\"Missing state\"}\r\n",
		rig.dispatch(`{"command":"SET_LED"}`))
}

func TestJSONGet(t *testing.T) {
	rig := newRig()

	rig.handler.State.Voltage = 0.81
	rig.handler.State.ADCRaw = 1000

	assert.Equal(t, "{\"status\":\"ok\",\"temperature\":25.0}\r\n",
		rig.dispatch(`{"command":"GET_TEMP"}`))
	assert.Equal(t, "{\"status\":\"ok\",\"voltage\":0.81,\"adc_raw\":1000}\r\n",
		rig.dispatch(`{"command":"GET_VOLTAGE"}`))
	assert.Equal(t, "{\"status\":\"ok\",\"led\":false,\"uptime\":0,\"voltage\":0.81,\"pwm\":0}\r\n",
		rig.dispatch(`{"command":"STATUS"}`))
}

func TestJSONReset(t *testing.T) {
	rig := newRig()

	assert.Equal(t, "{\"status\":\"ok\",\"message\":\"Resetting...\"}\r\n",
		rig.dispatch(`{"command":"RESET"}`))
	assert.Equal(t, 1, rig.resets)
}

func TestJSONUnknown(t *testing.T) {
	assert.Equal(t, "{\"status\":\"error\",\"message\":\"Unknown: FOO\"}\r\n",
		newRig().dispatch(`{"command":"FOO"}`))
}

func TestJSONInvalid(t *testing.T) {
	// an opening brace with a command key but no extractable value
	assert.Equal(t, "{\"status\":\"error\",\"message\":\"Invalid JSON\"}\r\n",
		newRig().dispatch(`{"command":}`))
}

func TestJSONDialectDetection(t *testing.T) {
	// an object without a command key is routed to the text dialect
	assert.Equal(t, "ERROR: Unknown '{\"foo\":1}'\r\n", newRig().dispatch(`{"foo":1}`))
}
