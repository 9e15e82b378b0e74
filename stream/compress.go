package stream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// zstd frame magic, little-endian on the wire: 28 B5 2F FD.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// WrapReader sniffs the input's leading magic bytes and transparently
// unwraps gzip- and zstd-compressed bitstreams. Uncompressed input (or
// input too short to sniff) passes through unchanged.
func WrapReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		// Too short to carry a compression header; let the framing
		// layer see whatever is there.
		return br, nil
	}

	switch {
	case magic[0] == 0x1F && magic[1] == 0x8B:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		return zr, nil
	case magic[0] == zstdMagic[0] && magic[1] == zstdMagic[1] &&
		magic[2] == zstdMagic[2] && magic[3] == zstdMagic[3]:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open zstd input: %w", err)
		}
		return zr.IOReadCloser(), nil
	}
	return br, nil
}
