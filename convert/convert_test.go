package convert

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/hexdump"
	"xdao.co/hexdec/storage/localfs"
)

const addressRow = "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f"

func writeDump(t *testing.T, dir, name, text string) string {
	t.Helper()
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(b)
}

func TestFile_StripsAddressBlock(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", addressRow+" 34 12")
	out := filepath.Join(dir, "out.txt")

	res, err := File(in, out, Options{StripAddress: true})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got := readFile(t, out); got != "4660" {
		t.Fatalf("output: got %q want %q", got, "4660")
	}
	if res.Tokens != 18 || res.Values != 1 || !res.Stripped {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.CID.String() != cidutil.CIDv1RawSHA256([]byte("4660")) {
		t.Fatalf("CID mismatch: %s", res.CID)
	}
}

func TestFile_ShiftJISHeaderIgnored(t *testing.T) {
	dir := t.TempDir()
	text := "アドレス　ＡＤＤＲＥＳＳ\r\n" + addressRow + "\r\nデータ ff ff 00 80\r\n"
	in := writeDump(t, dir, "dump.txt", text)
	out := filepath.Join(dir, "out.txt")

	if _, err := File(in, out, Options{StripAddress: true}); err != nil {
		t.Fatalf("File: %v", err)
	}
	if got := readFile(t, out); got != "-1 -32768" {
		t.Fatalf("output: got %q", got)
	}
}

func TestFile_ForcesTextExtension(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "dump.txt", "ff 7f")

	res, err := File(filepath.Join(dir, "dump.bin"), filepath.Join(dir, "result"), Options{})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if res.Output != filepath.Join(dir, "result.txt") {
		t.Fatalf("output path: got %s", res.Output)
	}
	if got := readFile(t, res.Output); got != "32767" {
		t.Fatalf("output: got %q", got)
	}
}

func TestFile_ByteScheme(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "00 7f 80 ff 0a")
	out := filepath.Join(dir, "out.txt")
	if _, err := File(in, out, Options{Scheme: hexdump.SchemeByte}); err != nil {
		t.Fatalf("File: %v", err)
	}
	if got := readFile(t, out); got != "0 127 128 255 10" {
		t.Fatalf("output: got %q", got)
	}
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()
	short := writeDump(t, dir, "short.txt", "00 01 02")
	odd := writeDump(t, dir, "odd.txt", "00 01 02")

	cases := []struct {
		name string
		in   string
		out  string
		opts Options
		kind hexdump.Kind
	}{
		{"missing input", filepath.Join(dir, "absent.txt"), filepath.Join(dir, "o1.txt"), Options{}, hexdump.KindIO},
		{"short address block", short, filepath.Join(dir, "o2.txt"), Options{StripAddress: true}, hexdump.KindInsufficientTokens},
		{"odd tokens", odd, filepath.Join(dir, "o3.txt"), Options{}, hexdump.KindOddTokenCount},
		{"uncreatable output", odd, filepath.Join(dir, "no", "such", "dir", "o4.txt"), Options{Scheme: hexdump.SchemeByte}, hexdump.KindIO},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := File(tc.in, tc.out, tc.opts)
			if !hexdump.IsKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "o3.txt")); !os.IsNotExist(err) {
		t.Fatalf("output must not be created when conversion fails: %v", err)
	}
}

func TestFile_Archive(t *testing.T) {
	dir := t.TempDir()
	archive, err := localfs.New(filepath.Join(dir, "archive"))
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	in := writeDump(t, dir, "dump.txt", "34 12 ff ff")
	res, err := File(in, filepath.Join(dir, "out.txt"), Options{Archive: archive})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !res.Archived {
		t.Fatalf("expected output to be archived")
	}
	got, err := archive.Get(res.CID)
	if err != nil {
		t.Fatalf("archive.Get: %v", err)
	}
	if string(got) != "4660 -1" {
		t.Fatalf("archived bytes: got %q", got)
	}
}

func TestInline(t *testing.T) {
	got, err := Inline([]string{"ff", "7f"}, hexdump.SchemeWord)
	if err != nil {
		t.Fatalf("Inline: %v", err)
	}
	if got != "32767" {
		t.Fatalf("Inline: got %q want %q", got, "32767")
	}

	got, err = Inline([]string{"00", "ff"}, hexdump.SchemeByte)
	if err != nil {
		t.Fatalf("Inline bytes: %v", err)
	}
	if got != "0 255" {
		t.Fatalf("Inline bytes: got %q", got)
	}

	if _, err := Inline([]string{"ff"}, hexdump.SchemeWord); !hexdump.IsKind(err, hexdump.KindOddTokenCount) {
		t.Fatalf("expected KindOddTokenCount, got %v", err)
	}
	if _, err := Inline([]string{"zz", "00"}, hexdump.SchemeWord); !hexdump.IsKind(err, hexdump.KindMalformedToken) {
		t.Fatalf("expected KindMalformedToken, got %v", err)
	}
}

func TestText_Empty(t *testing.T) {
	res, err := Text("no hex here", false, hexdump.SchemeWord)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if res.Text != "" || res.Values != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"dump":         "dump.txt",
		"dump.bin":     "dump.txt",
		"dump.tar.gz":  "dump.tar.txt",
		"dir/dump.txt": "dir/dump.txt",
		"dir.d/dump":   "dir.d/dump.txt",
		".hidden":      ".hidden.txt",
		"":             "",
		"dir/":         "dir/",
	}
	for in, want := range cases {
		if got := NormalizePath(in, ".txt"); got != want {
			t.Fatalf("NormalizePath(%q): got %q want %q", in, got, want)
		}
	}
}

func TestFile_CustomEngine(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "34 12")
	var sawText string
	engine := func(text string, strip bool, scheme hexdump.Scheme) (*Result, error) {
		sawText = text
		return Text(text, strip, scheme)
	}
	res, err := File(in, filepath.Join(dir, "out.txt"), Options{Engine: engine})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sawText != "34 12" || res.Text != "4660" {
		t.Fatalf("engine saw %q, result %q", sawText, res.Text)
	}
}
