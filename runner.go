package exepack

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Runner abstracts spawning an external process: stdin in, stdout out.
// Injecting it keeps everything that would fork testable with a fake.
type Runner interface {
	Run(name string, args []string, stdin []byte) ([]byte, error)
}

// ExecRunner runs commands with os/exec. It is the Runner used outside of
// tests.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), nil
}

// SystemCodec builds a codec that shells out to the system compression tool
// named after the algorithm ("<command> -c -9" / "<command> -d -c"), the same
// convention the stub's fallback path uses. Useful when the in-process
// libraries are not wanted for a given registry.
func SystemCodec(a Algorithm, r Runner) Codec {
	name := a.Command()
	return Codec{
		Compress: func(data []byte) ([]byte, error) {
			return r.Run(name, []string{"-c", "-9"}, data)
		},
		Decompress: func(data []byte) ([]byte, error) {
			return r.Run(name, []string{"-d", "-c"}, data)
		},
	}
}
