// ARMv7-M processor support
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

// Package arm provides support for ARMv7-M (Cortex-M3 class) cores, it
// implements interrupt masking, memory barriers, core peripheral drivers
// (SysTick, NVIC, SCB, DWT) and the register sequence required to transfer
// execution to another firmware image.
//
// The package adopts the following reference specifications:
//   - PM0056 - STM32F10xxx/20xxx/21xxx/L1xxxx Cortex-M3 programming manual - Rev 7 2017/03
//   - ARM DDI 0403E - ARMv7-M Architecture Reference Manual
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm` on
// bare metal ARM System-on-Chip components.
package arm

// CPU is an ARMv7-M core instance.
type CPU struct{}

// Init performs initialization of an ARMv7-M core instance, the cycle counter
// is started as time source.
func (cpu *CPU) Init() {
	cpu.EnableCycleCounter()
}
