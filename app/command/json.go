// Serial command protocol
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package command

import (
	"strings"
)

// maximum extracted command name length
const maxName = 31

// isJSON detects the embedded JSON dialect, a frame opening an object and
// containing a command key.
func isJSON(cmd string) bool {
	return strings.HasPrefix(cmd, "{") && strings.Contains(cmd, `"command"`)
}

// jsonString performs targeted extraction of a string value, this is not a
// general JSON parser: the value is whatever lies between `"key":"` and the
// next quote.
func jsonString(cmd string, key string) (val string, ok bool) {
	search := `"` + key + `":"`

	i := strings.Index(cmd, search)

	if i < 0 {
		return
	}

	val = cmd[i+len(search):]

	end := strings.IndexByte(val, '"')

	if end < 0 {
		return "", false
	}

	if end > maxName {
		end = maxName
	}

	return val[:end], true
}

// jsonParam performs targeted extraction of a decimal integer value for the
// named key within the params object.
func jsonParam(cmd string, key string) (val int, ok bool) {
	i := strings.Index(cmd, `"params"`)

	if i < 0 {
		return
	}

	rest := cmd[i:]

	if i = strings.IndexByte(rest, '{'); i < 0 {
		return
	}

	rest = rest[i:]

	search := `"` + key + `":`

	if i = strings.Index(rest, search); i < 0 {
		return
	}

	rest = strings.TrimLeft(rest[i+len(search):], " \t")

	if rest == "" {
		return
	}

	if rest[0] != '-' && (rest[0] < '0' || rest[0] > '9') {
		return
	}

	neg := false

	if rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}

	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		val = val*10 + int(rest[0]-'0')
		rest = rest[1:]
	}

	if neg {
		val = -val
	}

	return val, true
}
