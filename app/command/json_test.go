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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONStringExtraction(t *testing.T) {
	val, ok := jsonString(`{"command":"STATUS"}`, "command")
	assert.True(t, ok)
	assert.Equal(t, "STATUS", val)

	// extraction is capped at 31 characters
	long := strings.Repeat("A", 40)
	val, ok = jsonString(`{"command":"`+long+`"}`, "command")
	assert.True(t, ok)
	assert.Equal(t, long[:31], val)

	// unterminated value
	_, ok = jsonString(`{"command":"STATUS`, "command")
	assert.False(t, ok)

	// no match on a bare key
	_, ok = jsonString(`{"command":1}`, "command")
	assert.False(t, ok)
}

func TestJSONParamExtraction(t *testing.T) {
	cmd := `{"command":"SET_PWM","params":{"duty": 42}}`

	val, ok := jsonParam(cmd, "duty")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	// spaces and tabs before the value are skipped
	val, ok = jsonParam(`{"params":{"duty":`+" \t"+`7}}`, "duty")
	assert.True(t, ok)
	assert.Equal(t, 7, val)

	// negative values
	val, ok = jsonParam(`{"params":{"duty":-5}}`, "duty")
	assert.True(t, ok)
	assert.Equal(t, -5, val)

	// missing params object
	_, ok = jsonParam(`{"command":"SET_PWM"}`, "duty")
	assert.False(t, ok)

	// missing key
	_, ok = jsonParam(`{"params":{"state":1}}`, "duty")
	assert.False(t, ok)

	// non-numeric value
	_, ok = jsonParam(`{"params":{"duty":"42"}}`, "duty")
	assert.False(t, ok)
}
