// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package telemetry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbarmory/bluepill-boot/app/device"
)

func volts(raw uint16) float32 {
	return float32(raw) * 3.3 / 4095
}

func newLoop() (*Loop, *bytes.Buffer) {
	out := &bytes.Buffer{}

	l := &Loop{
		State:   device.NewState(),
		Voltage: volts,
		Out:     out,
	}

	return l, out
}

func samples(val uint16) []uint16 {
	s := make([]uint16, SampleCount)

	for i := range s {
		s[i] = val
	}

	return s
}

func TestAveraging(t *testing.T) {
	l, _ := newLoop()

	s := samples(0)

	for i := range s {
		s[i] = uint16(i * 100)
	}

	l.Step(101, s)

	// arithmetic mean of 0, 100 .. 1500
	assert.Equal(t, uint16(750), l.State.ADCRaw)
	assert.InDelta(t, 750*3.3/4095, l.State.Voltage, 0.001)
}

func TestSampleCadence(t *testing.T) {
	l, _ := newLoop()

	l.Step(100, samples(1000))
	assert.Zero(t, l.State.ADCRaw, "period must fully elapse")

	l.Step(101, samples(1000))
	assert.Equal(t, uint16(1000), l.State.ADCRaw)

	l.State.ADCRaw = 0
	l.Step(201, samples(1000))
	assert.Zero(t, l.State.ADCRaw, "cadence is anchored at the last sample")

	l.Step(202, samples(1000))
	assert.Equal(t, uint16(1000), l.State.ADCRaw)
}

func TestHeartbeat(t *testing.T) {
	l, out := newLoop()

	l.Step(4000, samples(1000))
	assert.Empty(t, out.String())

	l.Step(5001, samples(1000))

	// the heartbeat reports the uptime of the previous pass
	assert.Equal(t, "UP:4s V:0.81 PWM:0\r\n", out.String())
	assert.Equal(t, uint32(5), l.State.Uptime)
}

func TestHeartbeatCadence(t *testing.T) {
	l, out := newLoop()

	for now := uint32(0); now <= 20000; now += 10 {
		l.Step(now, samples(0))
	}

	// missed ticks are not made up
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("\r\n")))
}

func TestUptime(t *testing.T) {
	l, _ := newLoop()

	l.Step(12345, samples(0))
	assert.Equal(t, uint32(12), l.State.Uptime)
}
