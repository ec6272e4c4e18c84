package header

import "testing"

var sample = []byte(`#!/bin/sh
# packed by exepack
ALGO=xz
DECOMP_START=4096
DECOMP_SIZE=500
DATA_START=4596
set -e
`)

func TestStringField(t *testing.T) {
	if v, ok := StringField(sample, "ALGO"); !ok || v != "xz" {
		t.Fatalf("ALGO = %q/%v, want xz/true", v, ok)
	}
	if _, ok := StringField(sample, "MISSING"); ok {
		t.Fatalf("found nonexistent field")
	}
	// name must start the line; a substring match is not a field
	if _, ok := StringField([]byte("XDATA_START=1\n"), "DATA_START"); ok {
		t.Fatalf("matched field in the middle of a line")
	}
}

func TestIntField(t *testing.T) {
	cases := []struct {
		name  string
		field string
		want  int64
		ok    bool
	}{
		{"decomp size", "DECOMP_SIZE", 500, true},
		{"data start", "DATA_START", 4596, true},
		{"missing", "NOPE", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, ok := IntField(sample, c.field)
			if ok != c.ok || v != c.want {
				t.Fatalf("IntField(%s) = %d/%v, want %d/%v", c.field, v, ok, c.want, c.ok)
			}
		})
	}
}

func TestIntFieldRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"non-numeric", "N=abc\n"},
		{"empty value", "N=\n"},
		{"negative", "N=-5\n"},
		{"trailing junk", "N=12x\n"},
		{"overflow", "N=99999999999999999999\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if v, ok := IntField([]byte(c.text), "N"); ok {
				t.Fatalf("IntField accepted %q as %d", c.text, v)
			}
		})
	}
}

func TestFieldWithoutTrailingNewline(t *testing.T) {
	if v, ok := IntField([]byte("LAST=7"), "LAST"); !ok || v != 7 {
		t.Fatalf("LAST = %d/%v, want 7/true", v, ok)
	}
}

func TestFieldInZeroPaddedHeader(t *testing.T) {
	// packed headers are zero-padded to a fixed size; padding must not
	// confuse the scanner
	padded := make([]byte, 4096)
	copy(padded, sample)
	if v, ok := IntField(padded, "DATA_START"); !ok || v != 4596 {
		t.Fatalf("DATA_START = %d/%v, want 4596/true", v, ok)
	}
}
