// Package zx0 implements the optimal parser, command reducer, and bit
// emitter for the ZX0 compressed data format: a variable-length LZ77 code
// designed for extreme-constrained decoders.
//
// Compression only; there is no decoder in this package (decompression is
// intentionally out of scope — ZX0 decoders are tiny and are normally
// embedded directly in the target environment, not shipped as a Go API).
//
// Basic usage:
//
//	out, stats, err := zx0.Compress(data, zx0.DefaultCompressOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d -> %d bytes, %d commands\n", len(data), len(out), stats.Commands)
//
// For repeated use against many inputs, construct a *Compressor once with
// NewCompressor and call its Compress method, calling Reset between
// independent runs to reuse its scratch arenas.
package zx0
