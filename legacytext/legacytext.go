// Package legacytext decodes dump files written in legacy single/double-byte
// encodings into UTF-8 text.
//
// Decoders substitute U+FFFD for byte sequences they cannot map, so a decode
// error in practice means the underlying reader failed.
package legacytext

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"xdao.co/hexdec/hexdump"
)

// DefaultEncoding is the encoding the dump tool writes.
const DefaultEncoding = "shift_jis"

// Lookup returns the encoding registered under name (WHATWG labels, case
// insensitive). The empty string selects DefaultEncoding.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, DefaultEncoding) {
		return japanese.ShiftJIS, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, hexdump.WrapError(hexdump.KindConfig, fmt.Sprintf("unknown encoding %q", name), err)
	}
	return enc, nil
}

// Decode converts b from enc into UTF-8.
func Decode(b []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = japanese.ShiftJIS
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", hexdump.WrapError(hexdump.KindDecode, "legacy decode failed", err)
	}
	return string(out), nil
}

// DecodeReader reads r to EOF through a decoder for enc.
//
// Read failures are reported as KindIO, transform failures as KindDecode.
func DecodeReader(r io.Reader, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = japanese.ShiftJIS
	}
	src := &errTrackingReader{r: r}
	out, err := io.ReadAll(transform.NewReader(src, enc.NewDecoder()))
	if err != nil {
		if src.err != nil {
			return "", hexdump.WrapError(hexdump.KindIO, "read input", src.err)
		}
		return "", hexdump.WrapError(hexdump.KindDecode, "legacy decode failed", err)
	}
	return string(out), nil
}

type errTrackingReader struct {
	r   io.Reader
	err error
}

func (t *errTrackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
