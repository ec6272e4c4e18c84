package exepack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Codec is one compression scheme's byte transforms. Both directions work on
// whole buffers; streaming is deliberately out of scope since the engine
// reads and rewrites entire files.
type Codec struct {
	Compress   func([]byte) ([]byte, error)
	Decompress func([]byte) ([]byte, error)
}

// Registry maps algorithms to codecs and embedded decompressor blobs. It is
// built once and read-only afterwards; pass it by value into Pack/Unpack.
type Registry struct {
	codecs map[Algorithm]Codec
	blobs  map[Algorithm][]byte
}

// Option customizes registry construction.
type Option func(*Registry)

// WithDecompressor supplies the embedded decompressor blob for an algorithm.
// Blobs are produced by an external build step; a blob must read compressed
// bytes on stdin and write the original bytes to stdout.
func WithDecompressor(a Algorithm, blob []byte) Option {
	return func(r *Registry) { r.blobs[a] = blob }
}

// WithCodec replaces the default codec for an algorithm, e.g. with a
// SystemCodec when the in-process libraries are undesirable.
func WithCodec(a Algorithm, c Codec) Option {
	return func(r *Registry) { r.codecs[a] = c }
}

// NewRegistry builds the default registry: in-process library codecs for
// every algorithm and no embedded decompressor blobs.
func NewRegistry(opts ...Option) Registry {
	r := Registry{
		codecs: map[Algorithm]Codec{
			Gzip:       gzipCodec(),
			Bzip2:      bzip2Codec(),
			Xz:         xzCodec(),
			EmbeddedXz: xzCodec(),
			Zstd:       zstdCodec(),
		},
		blobs: map[Algorithm][]byte{},
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// Codec returns the codec registered for a.
func (r Registry) Codec(a Algorithm) (Codec, error) {
	c, ok := r.codecs[a]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, a)
	}
	return c, nil
}

// Decompressor returns the embedded decompressor blob for a, or nil when the
// packed file should rely on a system codec instead.
func (r Registry) Decompressor(a Algorithm) []byte { return r.blobs[a] }

func gzipCodec() Codec {
	return Codec{
		Compress: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decompress: func(data []byte) ([]byte, error) {
			zr, err := gzip.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			defer func() { _ = zr.Close() }()
			return io.ReadAll(zr)
		},
	}
}

func bzip2Codec() Codec {
	return Codec{
		Compress: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decompress: func(data []byte) ([]byte, error) {
			zr, err := bzip2.NewReader(bytes.NewReader(data), nil)
			if err != nil {
				return nil, err
			}
			defer func() { _ = zr.Close() }()
			return io.ReadAll(zr)
		},
	}
}

func xzCodec() Codec {
	return Codec{
		Compress: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			w, err := xz.NewWriter(&buf)
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decompress: func(data []byte) ([]byte, error) {
			zr, err := xz.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			return io.ReadAll(zr)
		},
	}
}

func zstdCodec() Codec {
	return Codec{
		Compress: func(data []byte) ([]byte, error) {
			enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
			if err != nil {
				return nil, err
			}
			out := enc.EncodeAll(data, nil)
			if err := enc.Close(); err != nil {
				return nil, err
			}
			return out, nil
		},
		Decompress: func(data []byte) ([]byte, error) {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
			defer dec.Close()
			return dec.DecodeAll(data, nil)
		},
	}
}
