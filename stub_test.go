package exepack

import (
	"strings"
	"testing"

	"github.com/javi11/exepack/internal/header"
)

func TestRenderStubFitsReservedHeader(t *testing.T) {
	// The blob size feeds the rendered offsets, so try small and huge.
	for _, a := range Algorithms() {
		for _, blobSize := range []int{0, 500, 50_000_000} {
			stub := renderStub(PlanLayout(HeaderReserved, blobSize), a)
			if len(stub) > HeaderReserved {
				t.Fatalf("%s/%d: stub is %d bytes, budget %d", a, blobSize, len(stub), HeaderReserved)
			}
		}
	}
}

func TestRenderStubShape(t *testing.T) {
	stub := renderStub(PlanLayout(HeaderReserved, 500), EmbeddedXz)
	if !strings.HasPrefix(stub, "#!/bin/sh\n") {
		t.Fatalf("stub does not start with shebang: %q", stub[:20])
	}
	if !strings.Contains(stub, Signature+"\n") {
		t.Fatalf("stub missing signature line")
	}
	// Each field must sit on its own line so the shell and the unpacker
	// read the same spelling.
	for _, line := range []string{"ALGO=exz", "DECOMP_START=4096", "DECOMP_SIZE=500", "DATA_START=4596"} {
		if !strings.Contains(stub, "\n"+line+"\n") {
			t.Fatalf("stub missing line %q", line)
		}
	}
	if !strings.Contains(stub, `exec "$tmp/prog" "$@"`) {
		t.Fatalf("stub missing exec with argument forwarding")
	}
	if !strings.Contains(stub, "trap 'rm -rf \"$tmp\"' EXIT HUP INT TERM") {
		t.Fatalf("stub missing cleanup trap")
	}
}

func TestRenderStubSystemFallback(t *testing.T) {
	stub := renderStub(PlanLayout(HeaderReserved, 0), Bzip2)
	if !strings.Contains(stub, "bzip2 -d -c") {
		t.Fatalf("stub missing system codec fallback for bzip2")
	}
	// EmbeddedXz falls back to the plain xz command, not its own tag.
	stub = renderStub(PlanLayout(HeaderReserved, 0), EmbeddedXz)
	if !strings.Contains(stub, "xz -d -c") {
		t.Fatalf("stub missing xz fallback for embedded variant")
	}
}

func TestRenderStubRoundTripsThroughHeaderParser(t *testing.T) {
	// The engine and the stub must agree byte-for-byte on the field text.
	lay := PlanLayout(HeaderReserved, 1234)
	stub := []byte(renderStub(lay, Xz))

	if v, ok := header.IntField(stub, fieldDecompSize); !ok || v != 1234 {
		t.Fatalf("DECOMP_SIZE = %d/%v, want 1234", v, ok)
	}
	if v, ok := header.IntField(stub, fieldDataStart); !ok || v != int64(lay.PayloadOffset) {
		t.Fatalf("DATA_START = %d/%v, want %d", v, ok, lay.PayloadOffset)
	}
	if s, ok := header.StringField(stub, fieldAlgo); !ok || s != "xz" {
		t.Fatalf("ALGO = %q/%v, want xz", s, ok)
	}
}
