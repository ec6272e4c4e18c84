package exepack

// Algorithm identifies one supported compression scheme. The set is closed;
// every switch over it is exhaustive.
type Algorithm int

const (
	Gzip Algorithm = iota + 1
	Bzip2
	Xz
	// EmbeddedXz produces the same xz container as Xz but the packed file
	// carries a stand-alone decompressor blob instead of relying on a
	// system xz command at run time.
	EmbeddedXz
	Zstd
)

// Container format magics. EmbeddedXz shares magicXz: the container is
// identical, only the run-time decompressor differs, which is why the packed
// header records the algorithm tag itself (see stub.go).
var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
	magicXz    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// String returns the short identifier used in header tags and CLI flags.
func (a Algorithm) String() string {
	switch a {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case EmbeddedXz:
		return "exz"
	case Zstd:
		return "zstd"
	}
	return "unknown"
}

// AlgorithmFromTag resolves a header/flag tag back to its Algorithm.
func AlgorithmFromTag(tag string) (Algorithm, bool) {
	for _, a := range Algorithms() {
		if a.String() == tag {
			return a, true
		}
	}
	return 0, false
}

// Algorithms lists every supported variant in detection priority order:
// longer magics first so a prefix can never shadow a longer signature, and
// Xz before EmbeddedXz so magic sniffing resolves the shared container to
// the system-codec variant.
func Algorithms() []Algorithm {
	return []Algorithm{Xz, EmbeddedXz, Zstd, Bzip2, Gzip}
}

// Magic returns the container magic prefix for the algorithm.
func (a Algorithm) Magic() []byte {
	switch a {
	case Gzip:
		return magicGzip
	case Bzip2:
		return magicBzip2
	case Xz, EmbeddedXz:
		return magicXz
	case Zstd:
		return magicZstd
	}
	return nil
}

// Command is the system decompression command the stub falls back to when no
// decompressor blob is embedded, invoked as "<command> -d -c".
func (a Algorithm) Command() string {
	if a == EmbeddedXz {
		return "xz"
	}
	return a.String()
}

// NeedsDecompressor reports whether packing with this algorithm requires an
// embedded decompressor blob.
func (a Algorithm) NeedsDecompressor() bool { return a == EmbeddedXz }

// Valid returns a nil error iff a is a known variant.
func (a Algorithm) Valid() error {
	switch a {
	case Gzip, Bzip2, Xz, EmbeddedXz, Zstd:
		return nil
	}
	return ErrUnknownAlgorithm
}

// Detect identifies the compression format of data by its magic prefix,
// scanning known prefixes in fixed priority order. It is total: unknown or
// empty input yields ok=false, never an error.
func Detect(data []byte) (Algorithm, bool) {
	for _, a := range Algorithms() {
		m := a.Magic()
		if len(data) < len(m) {
			continue
		}
		if string(data[:len(m)]) == string(m) {
			return a, true
		}
	}
	return 0, false
}
