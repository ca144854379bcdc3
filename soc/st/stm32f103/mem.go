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

import (
	"unsafe"
)

// Memory map
const (
	// On-chip flash (medium-density, 64 KiB)
	FLASH_BASE = 0x08000000
	FLASH_SIZE = 0x10000

	// flash page granularity
	FLASH_PAGE_SIZE = 0x1000

	// On-chip SRAM (20 KiB)
	SRAM_BASE = 0x20000000
	SRAM_SIZE = 0x5000
)

// Bytes returns a slice aliasing size bytes of memory mapped at the argument
// address, typically used to access flash contents.
func Bytes(addr uint32, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), size)
}

// Addr returns the memory address of the first element of a byte slice, used
// to target DMA transfers at statically allocated buffers.
func Addr(buf []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
}

// Addr16 returns the memory address of the first element of a uint16 slice.
func Addr16(buf []uint16) uint32 {
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
}
