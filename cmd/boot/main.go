// First stage loader for the Blue Pill secure firmware
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

	"github.com/usbarmory/bluepill-boot/board/bluepill"
	"github.com/usbarmory/bluepill-boot/boot/fault"
	"github.com/usbarmory/bluepill-boot/boot/handoff"
	"github.com/usbarmory/bluepill-boot/boot/meta"
	"github.com/usbarmory/bluepill-boot/boot/verify"
	"github.com/usbarmory/bluepill-boot/soc/st/stm32f103"
)

func init() {
	log.SetFlags(0)
}

func main() {
	if err := bluepill.Init(); err != nil {
		panic(err)
	}

	// let the supply settle before driving the indicator
	stm32f103.Delay(100)

	bluepill.Blink(2, 100, 100)
	stm32f103.Delay(500)

	record, err := meta.Parse(stm32f103.Bytes(bluepill.META_BASE, meta.RecordSize))

	if err == nil {
		img := stm32f103.Bytes(bluepill.IMG_BASE, bluepill.IMG_MAX)
		err = verify.Image(record, img, bluepill.IMG_MAX)
	}

	if err != nil {
		log.Printf("bluepill-boot: verification failed, %v", err)

		f, ok := err.(verify.Failure)

		if !ok {
			f = verify.BadMagic
		}

		// terminal state, service routines do not run
		stm32f103.ARM.DisableInterrupts()
		fault.Loop(f, bluepill.Indicator{}, stm32f103.Delay)
	}

	log.Printf("bluepill-boot: image verified (version %d, %d bytes)", record.Version, record.Size)

	bluepill.Blink(3, 200, 200)
	stm32f103.Delay(200)

	handoff.Boot(stm32f103.ARM, bluepill.IMG_BASE)
}
