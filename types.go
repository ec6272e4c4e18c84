// Package exepack converts executables into self-extracting executables:
// the original bytes are compressed and prefixed with a fixed-size shell
// bootstrap plus an optional embedded decompressor, so running the packed
// file transparently restores and executes the original program. The
// transformation is symmetric; Unpack restores the original bytes in place.
package exepack

import "errors"

// Sentinel errors surfaced by Pack/Unpack and the pre-pack validation.
// Callers discriminate with errors.Is.
var (
	// Validation errors (pack refuses the input file).
	ErrNotRegularFile = errors.New("not a regular file")
	ErrNotExecutable  = errors.New("not executable")
	ErrPrivileged     = errors.New("setuid or setgid bit set")
	ErrAlreadyPacked  = errors.New("already packed")

	// Format errors (unpack rejects the packed file).
	ErrNotPacked     = errors.New("not a packed file")
	ErrCorruptHeader = errors.New("corrupt packed header")
	ErrTruncated     = errors.New("truncated packed file")
	ErrUnknownFormat = errors.New("unknown payload format")

	// Pack-time configuration/budget errors.
	ErrStubTooLarge        = errors.New("stub exceeds reserved header")
	ErrMissingDecompressor = errors.New("no embedded decompressor for algorithm")
	ErrUnknownAlgorithm    = errors.New("unknown algorithm")
)

// PackReport summarizes one successful pack. Sizes are bytes; ratios are
// percentages saved relative to the original size (TotalRatio counts the
// embedded decompressor against the savings).
type PackReport struct {
	Path             string  `json:"path"`
	Algorithm        string  `json:"algorithm"`
	OriginalSize     int64   `json:"originalSize"`
	CompressedSize   int64   `json:"compressedSize"`
	DecompressorSize int64   `json:"decompressorSize"`
	PackedSize       int64   `json:"packedSize"`
	Ratio            float64 `json:"ratio"`
	TotalRatio       float64 `json:"totalRatio"`
	BackupPath       string  `json:"backupPath,omitempty"`
}

// UnpackReport summarizes one successful unpack.
type UnpackReport struct {
	Path         string `json:"path"`
	Algorithm    string `json:"algorithm"`
	PackedSize   int64  `json:"packedSize"`
	RestoredSize int64  `json:"restoredSize"`
	BackupPath   string `json:"backupPath,omitempty"`
}
