package exepack

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
)

// Validate gates a candidate file before packing. Checks run in order and
// short-circuit on the first failure: the path must resolve to a regular
// file, the file must be executable by someone, must not carry setuid or
// setgid (packing would silently relocate those bits), and must not already
// contain the packed-format signature. Each failure wraps a distinct
// sentinel so callers can tell the kinds apart.
func Validate(path string) (fs.FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	if st.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotExecutable)
	}
	if st.Mode()&(os.ModeSetuid|os.ModeSetgid) != 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrPrivileged)
	}
	packed, err := IsPacked(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if packed {
		return nil, fmt.Errorf("%s: %w", path, ErrAlreadyPacked)
	}
	return st, nil
}

// IsPacked reports whether the file contains the packed-format signature.
func IsPacked(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, []byte(Signature)), nil
}
