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

package arm

import (
	"github.com/usbarmory/bluepill-boot/internal/reg"
)

// SysTick registers
// (p150, 4.5 SysTick timer (STK), PM0056)
const (
	SYST_CSR      = 0xe000e010
	CSR_COUNTFLAG = 16
	CSR_CLKSOURCE = 2
	CSR_TICKINT   = 1
	CSR_ENABLE    = 0

	SYST_RVR = 0xe000e014
	SYST_CVR = 0xe000e018
)

// SysTickDisable stops the system tick timer, clearing its control, reload
// and current value registers.
func (cpu *CPU) SysTickDisable() {
	reg.Write(SYST_CSR, 0)
	reg.Write(SYST_RVR, 0)
	reg.Write(SYST_CVR, 0)
}
