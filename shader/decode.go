// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNotText = errors.New("source is not valid UTF-8 text")

var boms = [][]byte{
	{0xef, 0xbb, 0xbf},
	{0xfe, 0xff},
	{0xff, 0xfe},
}

// Decode returns raw as UTF-8 text. A byte order mark selects UTF-8 or
// UTF-16 and is stripped; without one raw must already be UTF-8.
func Decode(raw []byte) (string, error) {
	if !hasBOM(raw) && !utf8.Valid(raw) {
		return "", errNotText
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasBOM(raw []byte) bool {
	for _, b := range boms {
		if bytes.HasPrefix(raw, b) {
			return true
		}
	}
	return false
}
