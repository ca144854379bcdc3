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

package stm32f103

// Reinit restores the SoC to its post-reset state, undoing any configuration
// left behind by a first stage loader.
//
// The handoff performed by the loader deliberately leaves clock and
// peripheral enable registers untouched (see boot/handoff), this sequence is
// therefore required before any peripheral initialization takes place.
func Reinit() {
	ARM.DisableInterrupts()

	ARM.SysTickDisable()
	ARM.IRQDisableAll()
	ARM.IRQClearPendingAll()

	RCC.Reset()

	ARM.SetPriorityGrouping(0)

	ARM.Barrier()
	ARM.EnableInterrupts()
}
