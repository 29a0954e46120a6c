package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"google.golang.org/grpc"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/rpc"
)

const addressRow = "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f"

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

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

func TestDecimalConvert(t *testing.T) {
	code, out, errOut := runCLI(t, "", "decimal-convert", "ff", "7f")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "32767\n" {
		t.Fatalf("stdout: got %q", out)
	}

	code, out, _ = runCLI(t, "", "d", "--scheme", "byte", "00", "ff")
	if code != 0 || out != "0 255\n" {
		t.Fatalf("byte scheme: exit %d stdout %q", code, out)
	}
}

func TestDecimalConvert_Errors(t *testing.T) {
	code, _, errOut := runCLI(t, "", "d", "ff")
	if code != 1 || !strings.Contains(errOut, "even token count") {
		t.Fatalf("odd count: exit %d stderr %q", code, errOut)
	}
	code, _, errOut = runCLI(t, "", "d", "ff", "zz")
	if code != 1 || !strings.Contains(errOut, "not a two-digit hex byte") {
		t.Fatalf("malformed: exit %d stderr %q", code, errOut)
	}
	code, _, _ = runCLI(t, "", "d", "--scheme", "nibble", "ff", "00")
	if code != 2 {
		t.Fatalf("bad scheme: exit %d want 2", code)
	}
}

func TestFileConvert_PromptYes(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "ADDRESS\n"+addressRow+"\n34 12\n")
	outPath := filepath.Join(dir, "result")

	code, out, errOut := runCLI(t, "maybe\ny\n", "file-convert", "-i", in, "-o", outPath)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if got := readFile(t, outPath+".txt"); got != "4660" {
		t.Fatalf("output: got %q", got)
	}
	if strings.Count(out, "(y/n)") != 1 || !strings.Contains(out, "Please answer y or n") {
		t.Fatalf("prompt not repeated: %q", out)
	}
	if !strings.Contains(out, "file convert complete!\n"+cidutil.CIDv1RawSHA256([]byte("4660"))) {
		t.Fatalf("completion lines missing: %q", out)
	}
}

func TestFileConvert_PromptNo(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "34 12")
	outPath := filepath.Join(dir, "out.txt")

	code, _, errOut := runCLI(t, "n\n", "f", in, outPath)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if got := readFile(t, outPath); got != "4660" {
		t.Fatalf("output: got %q", got)
	}
}

func TestFileConvert_PromptEOF(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "34 12")
	code, _, _ := runCLI(t, "", "f", in, filepath.Join(dir, "out.txt"))
	if code != 1 {
		t.Fatalf("exit %d want 1", code)
	}
}

func TestFileConvert_StripFlagSkipsPrompt(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "00 01")
	code, out, errOut := runCLI(t, "", "f", "--strip", "yes", in, filepath.Join(dir, "out.txt"))
	if code != 1 {
		t.Fatalf("exit %d want 1 (too few tokens)", code)
	}
	if strings.Contains(out, "(y/n)") {
		t.Fatalf("prompt shown despite --strip: %q", out)
	}
	if !strings.Contains(errOut, "address block needs 16 tokens") {
		t.Fatalf("stderr: %q", errOut)
	}
}

func TestFileConvert_ConfigAndArchive(t *testing.T) {
	dir := t.TempDir()
	archiveDir := filepath.Join(dir, "archive")
	cfgPath := filepath.Join(dir, "hexdec.json")
	cfg := `{"scheme":"byte","strip_address":"no","archive_dir":"` + archiveDir + `"}`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	in := writeDump(t, dir, "dump.txt", "01 02 03")
	outPath := filepath.Join(dir, "out.txt")

	code, _, errOut := runCLI(t, "", "f", "--config", cfgPath, in, outPath)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if got := readFile(t, outPath); got != "1 2 3" {
		t.Fatalf("output: got %q", got)
	}
	if !strings.Contains(errOut, "archived") {
		t.Fatalf("archive note missing: %q", errOut)
	}
}

func TestFileConvert_Usage(t *testing.T) {
	code, _, errOut := runCLI(t, "", "f", "only-input")
	if code != 2 || !strings.Contains(errOut, "usage:") {
		t.Fatalf("exit %d stderr %q", code, errOut)
	}
}

func TestInteractive_Decimal(t *testing.T) {
	code, out, errOut := runCLI(t, "d 34 12 ff ff\n")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "4660 -1\n" {
		t.Fatalf("stdout: got %q", out)
	}
}

func TestInteractive_File(t *testing.T) {
	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", addressRow+" 00 80")
	outPath := filepath.Join(dir, "out.txt")
	code, _, errOut := runCLI(t, "f "+in+" "+outPath+"\ny\n")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if got := readFile(t, outPath); got != "-32768" {
		t.Fatalf("output: got %q", got)
	}
}

func TestInteractive_InvalidSelector(t *testing.T) {
	for _, line := range []string{"x 00 01\n", "\n", "file a b"} {
		code, _, errOut := runCLI(t, line)
		if code != 2 {
			t.Fatalf("%q: exit %d want 2", line, code)
		}
		if !strings.Contains(errOut, "mode selector") && !strings.Contains(errOut, "unknown mode") {
			t.Fatalf("%q: stderr %q", line, errOut)
		}
	}
}

func TestCID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("4660"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, out, _ := runCLI(t, "", "cid", path)
	if code != 0 || strings.TrimSpace(out) != cidutil.CIDv1RawSHA256([]byte("4660")) {
		t.Fatalf("exit %d stdout %q", code, out)
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "", "hex2bin")
	if code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("exit %d stderr %q", code, errOut)
	}
	code, out, _ := runCLI(t, "", "help")
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("help: exit %d stdout %q", code, out)
	}
}

func TestDecimalConvert_Remote(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	srv := grpc.NewServer()
	rpc.RegisterConverterServer(srv, &rpc.Server{})
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	code, out, errOut := runCLI(t, "", "d", "--remote", lis.Addr().String(), "--timeout", "5s", "ff", "ff")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "-1\n" {
		t.Fatalf("stdout: got %q", out)
	}

	dir := t.TempDir()
	in := writeDump(t, dir, "dump.txt", "ff 7f")
	outPath := filepath.Join(dir, "out.txt")
	code, _, errOut = runCLI(t, "", "f", "--remote", lis.Addr().String(), "--strip", "no", in, outPath)
	if code != 0 {
		t.Fatalf("file exit %d: %s", code, errOut)
	}
	if got := readFile(t, outPath); got != "32767" {
		t.Fatalf("output: got %q", got)
	}
}
