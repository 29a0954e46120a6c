package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/config"
	"xdao.co/hexdec/convert"
	"xdao.co/hexdec/hexdump"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	br := bufio.NewReader(in)
	if len(args) == 0 || strings.HasPrefix(args[0], "-") && !isHelp(args[0]) {
		return cmdInteractive(args, br, out, errOut)
	}

	switch args[0] {
	case "file-convert", "f":
		return cmdFileConvert(args[1:], br, out, errOut)
	case "decimal-convert", "d":
		return cmdDecimalConvert(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func isHelp(arg string) bool { return arg == "-h" || arg == "--help" }

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "hexdec: convert memory-dump hex text into decimal values")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hexdec file-convert [flags] -i <input> -o <output>")
	fmt.Fprintln(w, "  hexdec file-convert [flags] <input> <output>")
	fmt.Fprintln(w, "  hexdec decimal-convert [flags] <hex> [<hex> ...]")
	fmt.Fprintln(w, "  hexdec cid <file>")
	fmt.Fprintln(w, "  hexdec [flags]            (interactive: 'f <input> <output>' or 'd <hex> ...')")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --config <file.json>  defaults file")
	fmt.Fprintln(w, "  --scheme word|byte    word: signed 16-bit, first token is the low byte (default)")
	fmt.Fprintln(w, "  --encoding <label>    input encoding (default shift_jis)")
	fmt.Fprintln(w, "  --ext <.ext>          extension forced onto input and output paths (default .txt)")
	fmt.Fprintln(w, "  --strip ask|yes|no    remove the 16-token ADDRESS row (default ask)")
	fmt.Fprintln(w, "  --archive-dir <dir>   also file the output into a content-addressed archive")
	fmt.Fprintln(w, "  --remote <host:port>  convert through a hexdec-grpcd daemon")
	fmt.Fprintln(w, "  --timeout <dur>       per-call timeout for --remote")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - aliases: f = file-convert, d = decimal-convert")
	fmt.Fprintln(w, "  - output is space-separated decimal text with no trailing newline")
}

func cmdFileConvert(args []string, br *bufio.Reader, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("file-convert", flag.ContinueOnError)
	fs.SetOutput(errOut)
	common := registerCommonFlags(fs)
	var input, output string
	fs.StringVar(&input, "i", "", "Input dump file")
	fs.StringVar(&input, "input", "", "Input dump file")
	fs.StringVar(&output, "o", "", "Output file")
	fs.StringVar(&output, "output", "", "Output file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if input == "" && len(rest) > 0 {
		input, rest = rest[0], rest[1:]
	}
	if output == "" && len(rest) > 0 {
		output, rest = rest[0], rest[1:]
	}
	if input == "" || output == "" || len(rest) != 0 {
		fmt.Fprintln(errOut, "usage: hexdec file-convert [flags] -i <input> -o <output>")
		return 2
	}

	s, err := common.resolve()
	if err != nil {
		return fail(errOut, err)
	}
	defer s.close()
	return fileConvert(s, input, output, br, out, errOut)
}

func fileConvert(s *settings, input, output string, br *bufio.Reader, out io.Writer, errOut io.Writer) int {
	strip := s.strip == config.StripYes
	if s.strip == config.StripAsk {
		var err error
		strip, err = askStrip(br, out)
		if err != nil {
			return fail(errOut, err)
		}
	}

	res, err := convert.File(input, output, s.fileOptions(strip))
	if err != nil {
		return fail(errOut, err)
	}
	_, _ = fmt.Fprintln(out, "file convert complete!")
	_, _ = fmt.Fprintln(out, res.CID)
	if res.Archived {
		fmt.Fprintf(errOut, "archived %s (%d values) under %s\n", res.Output, res.Values, s.cfg.ArchiveDir)
	}
	return 0
}

func cmdDecimalConvert(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decimal-convert", flag.ContinueOnError)
	fs.SetOutput(errOut)
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	s, err := common.resolve()
	if err != nil {
		return fail(errOut, err)
	}
	defer s.close()
	return decimalConvert(s, fs.Args(), out, errOut)
}

func decimalConvert(s *settings, tokens []string, out io.Writer, errOut io.Writer) int {
	var text string
	var err error
	if s.remote != nil {
		text, err = s.remote.ConvertTokens(context.Background(), tokens, s.scheme)
	} else {
		text, err = convert.Inline(tokens, s.scheme)
	}
	if err != nil {
		return fail(errOut, err)
	}
	_, _ = fmt.Fprintln(out, text)
	return 0
}

// cmdInteractive reads one line: "f <input> <output>" or "d <hex> ...".
func cmdInteractive(args []string, br *bufio.Reader, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("hexdec", flag.ContinueOnError)
	fs.SetOutput(errOut)
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return 2
	}
	s, err := common.resolve()
	if err != nil {
		return fail(errOut, err)
	}
	defer s.close()

	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fail(errOut, hexdump.WrapError(hexdump.KindIO, "read command line", err))
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return fail(errOut, hexdump.NewError(hexdump.KindInvalidMode, "empty mode selector (want f or d)"))
	}

	switch words[0] {
	case "f":
		if len(words) != 3 {
			fmt.Fprintln(errOut, "usage: f <input> <output>")
			return 2
		}
		return fileConvert(s, words[1], words[2], br, out, errOut)
	case "d":
		return decimalConvert(s, words[1:], out, errOut)
	default:
		return fail(errOut, hexdump.NewError(hexdump.KindInvalidMode, fmt.Sprintf("unknown mode %q (want f or d)", words[0])))
	}
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: hexdec cid <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	id := cidutil.CIDv1RawSHA256(b)
	if id == "" {
		fmt.Fprintln(errOut, "failed to compute CID")
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

// askStrip asks whether to drop the ADDRESS row until it gets y or n.
func askStrip(br *bufio.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "Remove the first ADDRESS line? (y/n): ")
	for {
		line, err := br.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "" {
			switch answer[0] {
			case 'y':
				fmt.Fprintln(out)
				return true, nil
			case 'n':
				fmt.Fprintln(out)
				return false, nil
			}
		}
		if err != nil {
			fmt.Fprintln(out)
			return false, hexdump.WrapError(hexdump.KindIO, "read answer", err)
		}
		fmt.Fprint(out, "\nPlease answer y or n: ")
	}
}

// fail reports err and maps it to an exit code: 2 for selector and
// configuration problems, 1 for everything else.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "hexdec: %v\n", err)
	switch hexdump.KindOf(err) {
	case hexdump.KindInvalidMode, hexdump.KindConfig:
		return 2
	default:
		return 1
	}
}
