// Serial intake buffering
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package intake implements the receive side of the serial command channel:
// position tracking over a circular DMA buffer and accumulation of byte
// streams into line frames.
//
// The ring buffer is written by DMA hardware and read by the main loop, a
// single-producer single-consumer discipline with the DMA remaining count
// register as only synchronization primitive. Bytes outstanding beyond the
// ring size lap the reader and are silently lost.
package intake

import (
	"strings"
)

const (
	// RingSize is the circular DMA buffer length.
	RingSize = 512

	// LineSize is the command line buffer length.
	LineSize = 512
)

// Ring tracks the consumed position over a circular DMA buffer.
type Ring struct {
	prev int
}

// Consume feeds to fn all bytes the DMA engine has written since the last
// invocation, in arrival order. The remaining argument is the DMA channel
// outstanding element count, buf the memory aliased by the channel.
func (r *Ring) Consume(remaining int, buf []byte, fn func(byte)) {
	cur := len(buf) - remaining

	if cur == r.prev {
		return
	}

	if cur < r.prev {
		// the write position wrapped around
		for _, c := range buf[r.prev:] {
			fn(c)
		}

		r.prev = 0
	}

	for _, c := range buf[r.prev:cur] {
		fn(c)
	}

	r.prev = cur
}

// Line accumulates bytes into terminator delimited command frames.
//
// Both `\n` and `\r` complete a frame, empty frames are ignored (a `\r\n`
// pair therefore counts as a single terminator for reception purposes).
// Lines exceeding the buffer are discarded up to the next terminator.
type Line struct {
	buf [LineSize]byte
	n   int

	overflow bool
}

// Feed accumulates a single byte, returning a completed command frame,
// trimmed of leading spaces and trailing whitespace, when a terminator is
// reached.
func (l *Line) Feed(c byte) (cmd string, complete bool) {
	if c == '\n' || c == '\r' {
		if l.overflow {
			// discarding resynchronizes on the terminator
			l.overflow = false
			return
		}

		if l.n == 0 {
			return
		}

		cmd = string(l.buf[:l.n])
		l.n = 0

		cmd = strings.TrimLeft(cmd, " ")
		cmd = strings.TrimRight(cmd, " \r\n")

		return cmd, cmd != ""
	}

	if l.overflow {
		return
	}

	if l.n == len(l.buf)-1 {
		// discard the partial line
		l.n = 0
		l.overflow = true
		return
	}

	l.buf[l.n] = c
	l.n++

	return
}
