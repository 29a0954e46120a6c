package hexdump

import "fmt"

// Scheme selects how tokens are assembled into values.
type Scheme int

const (
	// SchemeWord pairs consecutive tokens into signed 16-bit values. The first
	// token of each pair is the low byte.
	SchemeWord Scheme = iota
	// SchemeByte decodes every token on its own as an unsigned 8-bit value.
	SchemeByte
)

func (s Scheme) String() string {
	switch s {
	case SchemeWord:
		return "word"
	case SchemeByte:
		return "byte"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme maps a scheme name to a Scheme. The empty string selects SchemeWord.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "", "word", "signed-word-swap", "i16":
		return SchemeWord, nil
	case "byte", "unsigned-byte", "u8":
		return SchemeByte, nil
	default:
		return 0, NewError(KindConfig, fmt.Sprintf("unknown scheme %q (want word or byte)", name))
	}
}
