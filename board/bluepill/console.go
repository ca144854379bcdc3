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

package bluepill

import (
	_ "unsafe"

	"github.com/usbarmory/bluepill-boot/soc/st/dma"
	"github.com/usbarmory/bluepill-boot/soc/st/stm32f103"
	"github.com/usbarmory/bluepill-boot/soc/st/usart"
)

// On the Blue Pill the serial console is USART2, therefore standard output
// is redirected there.

//go:linkname printk runtime.printk
func printk(c byte) {
	stm32f103.USART2.Tx(c)
}

// Console is a framed reply writer over the serial port, each write is
// submitted as a single DMA transmission from a scratch buffer.
//
// Write does not return until the port reports the transmission complete,
// serializing successive replies and preventing scratch buffer reuse while a
// transfer is in flight.
type Console struct {
	// UART is the underlying serial port.
	UART *usart.USART
	// TX is the transmit DMA channel.
	TX *dma.Channel

	buf [512]byte
}

// Write emits a single framed reply, replies longer than the scratch buffer
// are truncated.
func (c *Console) Write(p []byte) (n int, _ error) {
	n = len(p)

	if n > len(c.buf) {
		n = len(c.buf)
	}

	copy(c.buf[:], p[:n])

	c.TX.Start(c.UART.DR(), stm32f103.Addr(c.buf[:]), n)

	for !c.TX.TransferComplete() {
		// serialize against the next caller
	}

	for !c.UART.TxDone() {
		// let the last character leave the shift register
	}

	return
}
