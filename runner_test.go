package exepack

import (
	"bytes"
	"errors"
	"testing"
)

// fakeRunner records the invocation and returns canned output.
type fakeRunner struct {
	name  string
	args  []string
	stdin []byte
	out   []byte
	err   error
}

func (f *fakeRunner) Run(name string, args []string, stdin []byte) ([]byte, error) {
	f.name = name
	f.args = args
	f.stdin = stdin
	return f.out, f.err
}

func TestSystemCodecCompress(t *testing.T) {
	fr := &fakeRunner{out: []byte("compressed")}
	c := SystemCodec(Gzip, fr)
	out, err := c.Compress([]byte("input"))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if string(out) != "compressed" {
		t.Fatalf("out = %q", out)
	}
	if fr.name != "gzip" {
		t.Fatalf("command = %q, want gzip", fr.name)
	}
	if len(fr.args) != 2 || fr.args[0] != "-c" || fr.args[1] != "-9" {
		t.Fatalf("args = %v, want [-c -9]", fr.args)
	}
	if string(fr.stdin) != "input" {
		t.Fatalf("stdin = %q", fr.stdin)
	}
}

func TestSystemCodecDecompress(t *testing.T) {
	fr := &fakeRunner{out: []byte("original")}
	c := SystemCodec(EmbeddedXz, fr)
	out, err := c.Decompress([]byte("packed"))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(out) != "original" {
		t.Fatalf("out = %q", out)
	}
	// embedded variant shells out to the plain xz tool
	if fr.name != "xz" {
		t.Fatalf("command = %q, want xz", fr.name)
	}
	if len(fr.args) != 2 || fr.args[0] != "-d" || fr.args[1] != "-c" {
		t.Fatalf("args = %v, want [-d -c]", fr.args)
	}
}

func TestSystemCodecError(t *testing.T) {
	wantErr := errors.New("spawn failed")
	c := SystemCodec(Zstd, &fakeRunner{err: wantErr})
	if _, err := c.Decompress([]byte("x")); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRegistryWithSystemCodec(t *testing.T) {
	// a registry can route one algorithm through the process interface
	fr := &fakeRunner{out: []byte("via-process")}
	reg := NewRegistry(WithCodec(Bzip2, SystemCodec(Bzip2, fr)))
	c, err := reg.Codec(Bzip2)
	if err != nil {
		t.Fatalf("Codec: %v", err)
	}
	out, err := c.Compress([]byte("data"))
	if err != nil || string(out) != "via-process" {
		t.Fatalf("Compress = %q/%v", out, err)
	}
	if fr.name != "bzip2" {
		t.Fatalf("command = %q, want bzip2", fr.name)
	}
}

func TestExecRunnerCat(t *testing.T) {
	out, err := ExecRunner{}.Run("cat", nil, []byte("pass through"))
	if err != nil {
		t.Skipf("cat not available: %v", err)
	}
	if !bytes.Equal(out, []byte("pass through")) {
		t.Fatalf("out = %q", out)
	}
}
