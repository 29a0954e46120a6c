// Package convert runs the hex-dump pipeline against files and token lists.
package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/hexdump"
	"xdao.co/hexdec/legacytext"
	"xdao.co/hexdec/storage"
)

// DefaultExt is the extension forced onto input and output paths.
const DefaultExt = ".txt"

// Options controls a file conversion. The zero value converts Shift-JIS input
// with the word scheme, keeps the address block and archives nothing.
type Options struct {
	StripAddress bool
	Scheme       hexdump.Scheme

	// Encoding decodes the input bytes. Nil selects Shift-JIS.
	Encoding encoding.Encoding

	// Extension replaces the extension of both paths. Empty selects DefaultExt.
	Extension string

	// Archive, when set, receives a copy of the output bytes.
	Archive storage.Archive

	// Engine converts the decoded text. Nil selects Text; rpc.Client supplies
	// a remote engine.
	Engine Engine
}

// Engine turns decoded dump text into a Result.
type Engine func(text string, stripAddress bool, scheme hexdump.Scheme) (*Result, error)

// Result describes a completed conversion.
type Result struct {
	Input    string
	Output   string
	Text     string
	Tokens   int
	Values   int
	Stripped bool
	CID      cid.Cid
	Archived bool
}

// Text converts already decoded dump text.
func Text(text string, stripAddress bool, scheme hexdump.Scheme) (*Result, error) {
	tokens := hexdump.Extract(text)
	kept, err := hexdump.StripAddress(tokens, stripAddress)
	if err != nil {
		return nil, err
	}
	values, err := hexdump.Assemble(kept, scheme)
	if err != nil {
		return nil, err
	}
	out := hexdump.Render(values)
	id, err := cidutil.CIDv1RawSHA256CID([]byte(out))
	if err != nil {
		return nil, hexdump.WrapError(hexdump.KindIO, "output cid", err)
	}
	return &Result{
		Text:     out,
		Tokens:   len(tokens),
		Values:   values.Len(),
		Stripped: stripAddress,
		CID:      id,
	}, nil
}

// Inline converts tokens the user typed directly. Tokens are not filtered:
// any entry that is not a two-digit hex byte fails with KindMalformedToken.
func Inline(tokens []string, scheme hexdump.Scheme) (string, error) {
	values, err := hexdump.Assemble(tokens, scheme)
	if err != nil {
		return "", err
	}
	return hexdump.Render(values), nil
}

// File converts the dump at input and writes the decimal text to output.
//
// Both paths have their extension replaced by opts.Extension first. The
// output is only created after the input converted cleanly.
func File(input, output string, opts Options) (*Result, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExt
	}
	input = NormalizePath(input, ext)
	output = NormalizePath(output, ext)

	text, err := readDump(input, opts.Encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", input)
	}
	engine := opts.Engine
	if engine == nil {
		engine = Text
	}
	res, err := engine(text, opts.StripAddress, opts.Scheme)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", input)
	}
	res.Input = input
	res.Output = output

	if err := writeOutput(output, []byte(res.Text)); err != nil {
		return nil, errors.Wrapf(err, "write %s", output)
	}

	if opts.Archive != nil {
		id, err := opts.Archive.Put([]byte(res.Text))
		if err != nil {
			return nil, errors.Wrap(hexdump.WrapError(hexdump.KindIO, "archive output", err), output)
		}
		if id != res.CID {
			return nil, errors.Wrap(hexdump.WrapError(hexdump.KindIO, "archive output", storage.ErrCIDMismatch), output)
		}
		res.Archived = true
	}
	return res, nil
}

func readDump(path string, enc encoding.Encoding) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", hexdump.WrapError(hexdump.KindIO, "open input", err)
	}
	defer f.Close()
	return legacytext.DecodeReader(f, enc)
}

func writeOutput(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return hexdump.WrapError(hexdump.KindIO, "create output", err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return hexdump.WrapError(hexdump.KindIO, "write output", err)
	}
	if err := f.Close(); err != nil {
		return hexdump.WrapError(hexdump.KindIO, "close output", err)
	}
	return nil
}

// NormalizePath replaces the extension of p's last element with ext, or
// appends ext when there is none. A leading dot does not start an extension.
func NormalizePath(p, ext string) string {
	if p == "" {
		return p
	}
	dir, base := filepath.Split(p)
	if base == "" || base == "." || base == ".." {
		return p
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return dir + base + ext
}
