package main

import (
	"context"
	"flag"
	"time"

	"golang.org/x/text/encoding"

	"xdao.co/hexdec/config"
	"xdao.co/hexdec/convert"
	"xdao.co/hexdec/hexdump"
	"xdao.co/hexdec/legacytext"
	"xdao.co/hexdec/rpc"
	"xdao.co/hexdec/storage/localfs"
)

type commonFlags struct {
	fs         *flag.FlagSet
	configPath string
	scheme     string
	encoding   string
	ext        string
	strip      string
	archiveDir string
	remote     string
	timeout    time.Duration
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{fs: fs}
	fs.StringVar(&c.configPath, "config", "", "JSON defaults file")
	fs.StringVar(&c.scheme, "scheme", "", "Assembly scheme: word or byte")
	fs.StringVar(&c.encoding, "encoding", "", "Input text encoding label")
	fs.StringVar(&c.ext, "ext", "", "Extension forced onto input and output paths")
	fs.StringVar(&c.strip, "strip", "", "Remove the ADDRESS row: ask, yes or no")
	fs.StringVar(&c.archiveDir, "archive-dir", "", "Archive directory for converted outputs")
	fs.StringVar(&c.remote, "remote", "", "hexdec-grpcd address (host:port)")
	fs.DurationVar(&c.timeout, "timeout", 0, "Per-call timeout for --remote")
	return c
}

// settings is the merged view of defaults, the config file and flags.
type settings struct {
	cfg     config.Config
	scheme  hexdump.Scheme
	enc     encoding.Encoding
	strip   config.StripPolicy
	archive *localfs.Archive
	remote  *rpc.Client
}

func (c *commonFlags) resolve() (*settings, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.LoadFile(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scheme":
			cfg.Scheme = c.scheme
		case "encoding":
			cfg.Encoding = c.encoding
		case "ext":
			cfg.Extension = c.ext
		case "strip":
			cfg.StripAddress = config.StripPolicy(c.strip)
		case "archive-dir":
			cfg.ArchiveDir = c.archiveDir
		case "remote":
			cfg.Remote = c.remote
		case "timeout":
			cfg.Timeout = config.Duration(c.timeout)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	var err error
	if s.scheme, err = hexdump.ParseScheme(cfg.Scheme); err != nil {
		return nil, err
	}
	if s.enc, err = legacytext.Lookup(cfg.Encoding); err != nil {
		return nil, err
	}
	if s.strip, err = config.ParseStripPolicy(string(cfg.StripAddress)); err != nil {
		return nil, err
	}
	if cfg.ArchiveDir != "" {
		if s.archive, err = localfs.New(cfg.ArchiveDir); err != nil {
			return nil, hexdump.WrapError(hexdump.KindIO, "open archive", err)
		}
	}
	if cfg.Remote != "" {
		timeout := time.Duration(cfg.Timeout)
		if s.remote, err = rpc.Dial(cfg.Remote, rpc.DialOptions{Timeout: timeout}); err != nil {
			return nil, err
		}
		s.remote.Timeout = timeout
	}
	return s, nil
}

func (s *settings) close() {
	if s.remote != nil {
		_ = s.remote.Close()
	}
}

func (s *settings) fileOptions(strip bool) convert.Options {
	opts := convert.Options{
		StripAddress: strip,
		Scheme:       s.scheme,
		Encoding:     s.enc,
		Extension:    s.cfg.Extension,
	}
	if s.archive != nil {
		opts.Archive = s.archive
	}
	if s.remote != nil {
		remote := s.remote
		opts.Engine = func(text string, stripAddress bool, scheme hexdump.Scheme) (*convert.Result, error) {
			return remote.ConvertText(context.Background(), text, stripAddress, scheme)
		}
	}
	return opts
}
