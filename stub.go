package exepack

import "fmt"

// Signature marks a file as packed by this tool. It appears verbatim on its
// own line inside the stub; both the pre-pack gate and the unpacker search
// for it.
const Signature = "# packed by exepack"

// Header field names. Each appears as NAME=value on its own line in the stub
// so that the unpacker (or a human with grep) can read the layout back
// without re-deriving it. The stub and the unpacker must agree byte-for-byte
// on these spellings.
const (
	fieldAlgo        = "ALGO"
	fieldDecompStart = "DECOMP_START"
	fieldDecompSize  = "DECOMP_SIZE"
	fieldDataStart   = "DATA_START"
)

// renderStub produces the shell bootstrap for a packed file. At run time the
// script extracts the decompressor and payload regions by byte offset into a
// PID-scoped temp directory, decompresses, and execs the result with the
// original arguments. Every extraction step is checked for emptiness so a
// corrupted file fails loudly and deterministically instead of executing
// garbage. When the decompressor size is zero the system codec command is
// used instead ("<name> -d -c").
func renderStub(lay Layout, algo Algorithm) string {
	return fmt.Sprintf(`#!/bin/sh
%s
%s=%s
%s=%d
%s=%d
%s=%d
set -e
tmp="${TMPDIR:-/tmp}/exepack.$$"
mkdir "$tmp" || exit 1
trap 'rm -rf "$tmp"' EXIT HUP INT TERM
tail -c +$((DATA_START + 1)) "$0" > "$tmp/payload"
if [ ! -s "$tmp/payload" ]; then
    echo "exepack: $0: empty payload, packed file is corrupt" >&2
    exit 1
fi
if [ "$DECOMP_SIZE" -gt 0 ]; then
    tail -c +$((DECOMP_START + 1)) "$0" | head -c "$DECOMP_SIZE" > "$tmp/decomp"
    if [ ! -s "$tmp/decomp" ]; then
        echo "exepack: $0: empty decompressor, packed file is corrupt" >&2
        exit 1
    fi
    chmod +x "$tmp/decomp"
    "$tmp/decomp" < "$tmp/payload" > "$tmp/prog"
else
    %s -d -c < "$tmp/payload" > "$tmp/prog"
fi
if [ ! -s "$tmp/prog" ]; then
    echo "exepack: $0: decompression produced no output" >&2
    exit 1
fi
chmod +x "$tmp/prog"
exec "$tmp/prog" "$@"
`,
		Signature,
		fieldAlgo, algo.String(),
		fieldDecompStart, lay.DecompressorOffset,
		fieldDecompSize, lay.DecompressorSize,
		fieldDataStart, lay.PayloadOffset,
		algo.Command(),
	)
}
