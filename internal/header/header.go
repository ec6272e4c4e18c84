// Package header reads the plain-text NAME=value fields a packed file's stub
// embeds. Fields live on their own lines inside shell script text, so the
// same bytes are meaningful both to /bin/sh and to this parser.
package header

import (
	"bytes"
	"strconv"
)

// StringField returns the value of the first "name=value" line in text.
func StringField(text []byte, name string) (string, bool) {
	prefix := []byte(name + "=")
	for len(text) > 0 {
		line := text
		if i := bytes.IndexByte(text, '\n'); i >= 0 {
			line = text[:i]
			text = text[i+1:]
		} else {
			text = nil
		}
		if bytes.HasPrefix(line, prefix) {
			return string(line[len(prefix):]), true
		}
	}
	return "", false
}

// IntField returns the decimal value of the first "name=value" line in text.
// ok is false when the field is absent or the value is not a plain
// non-negative decimal number.
func IntField(text []byte, name string) (int64, bool) {
	s, ok := StringField(text, name)
	if !ok || s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
