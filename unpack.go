package exepack

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/javi11/exepack/internal/header"
)

// Header is the layout a packed file declares about itself, parsed back out
// of the stub text.
type Header struct {
	Algorithm        string `json:"algorithm,omitempty"`
	DecompressorSize int64  `json:"decompressorSize"`
	PayloadOffset    int64  `json:"payloadOffset"`
	PayloadSize      int64  `json:"payloadSize"`
}

// parseHeader reads the signature and offset fields out of the fixed header
// region. data is the whole packed file.
func parseHeader(data []byte) (*Header, error) {
	head := data
	if len(head) > HeaderReserved {
		head = head[:HeaderReserved]
	}
	if !bytes.Contains(head, []byte(Signature)) {
		return nil, ErrNotPacked
	}
	decompSize, ok := header.IntField(head, fieldDecompSize)
	if !ok {
		return nil, fmt.Errorf("%w: bad %s field", ErrCorruptHeader, fieldDecompSize)
	}
	dataStart, ok := header.IntField(head, fieldDataStart)
	if !ok || dataStart == 0 {
		return nil, fmt.Errorf("%w: bad %s field", ErrCorruptHeader, fieldDataStart)
	}
	if dataStart < int64(HeaderReserved) || dataStart != int64(HeaderReserved)+decompSize {
		return nil, fmt.Errorf("%w: inconsistent offsets %d/%d", ErrCorruptHeader, decompSize, dataStart)
	}
	if int64(len(data)) < dataStart {
		return nil, fmt.Errorf("%w: %d bytes, payload declared at %d", ErrTruncated, len(data), dataStart)
	}
	tag, _ := header.StringField(head, fieldAlgo)
	return &Header{
		Algorithm:        tag,
		DecompressorSize: decompSize,
		PayloadOffset:    dataStart,
		PayloadSize:      int64(len(data)) - dataStart,
	}, nil
}

// Inspect reads a packed file's self-declared layout without touching it.
func Inspect(path string) (*Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Unpack restores the original bytes of a packed file in place. The
// algorithm comes from the header's own tag when it names a known variant;
// otherwise it is sniffed from the payload magic (files written before the
// tag field existed). With keepBackup the still-packed file is renamed aside
// to path+".compressed" first, otherwise it is deleted before the restored
// bytes are written.
func Unpack(reg Registry, path string, keepBackup bool) (*UnpackReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	payload := data[h.PayloadOffset:]

	algo, ok := AlgorithmFromTag(h.Algorithm)
	if !ok {
		algo, ok = Detect(payload)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	codec, err := reg.Codec(algo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	restored, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: decompress %s: %w", path, algo, err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	backupPath := ""
	if keepBackup {
		backupPath = path + CompressedSuffix
		if err := os.Rename(path, backupPath); err != nil {
			return nil, fmt.Errorf("%s: backup: %w", path, err)
		}
	} else if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, restored, st.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// WriteFile's mode is filtered through the umask; re-apply explicitly.
	if err := os.Chmod(path, st.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("%s: restore permissions: %w", path, err)
	}
	return &UnpackReport{
		Path:         path,
		Algorithm:    algo.String(),
		PackedSize:   int64(len(data)),
		RestoredSize: int64(len(restored)),
		BackupPath:   backupPath,
	}, nil
}

// UnpackAll unpacks each path independently and sequentially, collecting
// per-file failures without stopping.
func UnpackAll(reg Registry, paths []string, keepBackup bool) ([]*UnpackReport, error) {
	var reports []*UnpackReport
	var errs []error
	for _, p := range paths {
		r, err := Unpack(reg, p, keepBackup)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}
