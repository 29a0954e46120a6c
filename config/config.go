// Package config loads the optional JSON defaults file for hexdec programs.
//
// Example:
//
//	{
//	  "scheme": "word",
//	  "encoding": "shift_jis",
//	  "extension": ".txt",
//	  "strip_address": "ask",
//	  "archive_dir": "/var/lib/hexdec/archive",
//	  "remote": "127.0.0.1:7780",
//	  "timeout": "5s"
//	}
//
// Command-line flags override values loaded from the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"xdao.co/hexdec/hexdump"
	"xdao.co/hexdec/legacytext"
)

// StripPolicy decides whether the address block is removed during file conversion.
type StripPolicy string

const (
	StripAsk StripPolicy = "ask"
	StripYes StripPolicy = "yes"
	StripNo  StripPolicy = "no"
)

// ParseStripPolicy accepts ask/yes/no and the y/n shorthands.
func ParseStripPolicy(s string) (StripPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ask":
		return StripAsk, nil
	case "y", "yes", "true":
		return StripYes, nil
	case "n", "no", "false":
		return StripNo, nil
	default:
		return "", hexdump.NewError(hexdump.KindConfig, fmt.Sprintf("config: invalid strip_address %q", s))
	}
}

type Config struct {
	Scheme       string      `json:"scheme,omitempty"`
	Encoding     string      `json:"encoding,omitempty"`
	Extension    string      `json:"extension,omitempty"`
	StripAddress StripPolicy `json:"strip_address,omitempty"`
	ArchiveDir   string      `json:"archive_dir,omitempty"`
	Remote       string      `json:"remote,omitempty"`
	Timeout      Duration    `json:"timeout,omitempty"`
}

// Duration is a time.Duration that reads from JSON strings such as "5s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Scheme:       hexdump.SchemeWord.String(),
		Encoding:     legacytext.DefaultEncoding,
		Extension:    ".txt",
		StripAddress: StripAsk,
		Timeout:      Duration(10 * time.Second),
	}
}

// LoadFile reads path over Default and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, hexdump.NewError(hexdump.KindConfig, "config: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, hexdump.WrapError(hexdump.KindIO, "config: read "+path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, hexdump.WrapError(hexdump.KindConfig, "config: parse "+path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := hexdump.ParseScheme(c.Scheme); err != nil {
		return err
	}
	if _, err := legacytext.Lookup(c.Encoding); err != nil {
		return err
	}
	if c.Extension != "" && (!strings.HasPrefix(c.Extension, ".") || strings.ContainsAny(c.Extension, `/\`) || len(c.Extension) < 2) {
		return hexdump.NewError(hexdump.KindConfig, fmt.Sprintf("config: invalid extension %q", c.Extension))
	}
	if _, err := ParseStripPolicy(string(c.StripAddress)); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return hexdump.NewError(hexdump.KindConfig, "config: timeout must not be negative")
	}
	return nil
}
