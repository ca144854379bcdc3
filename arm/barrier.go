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

// defined in barrier.s
func data_sync_barrier()
func instr_sync_barrier()

// DataSyncBarrier completes all explicit memory accesses before the next
// instruction (DSB).
func (cpu *CPU) DataSyncBarrier() {
	data_sync_barrier()
}

// InstrSyncBarrier flushes the processor pipeline, all following instructions
// are refetched (ISB).
func (cpu *CPU) InstrSyncBarrier() {
	instr_sync_barrier()
}

// Barrier issues a data synchronization barrier followed by an instruction
// synchronization barrier, as required after vector table or stack pointer
// relocation.
func (cpu *CPU) Barrier() {
	data_sync_barrier()
	instr_sync_barrier()
}
