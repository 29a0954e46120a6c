package hexdump

import "fmt"

// Values is an assembled value sequence. Bytes is populated for SchemeByte,
// Words for SchemeWord.
type Values struct {
	Scheme Scheme
	Bytes  []uint8
	Words  []int16
}

// Len returns the number of assembled values.
func (v Values) Len() int {
	if v.Scheme == SchemeByte {
		return len(v.Bytes)
	}
	return len(v.Words)
}

// Assemble decodes tokens under the given scheme.
//
// Under SchemeWord tokens are consumed in pairs (t0, t1) and each pair yields
// the two's-complement value of the 16-bit word t1t0, so an odd token count
// fails with KindOddTokenCount. Any token that is not a two-digit hex pair
// fails with KindMalformedToken.
func Assemble(tokens []string, scheme Scheme) (Values, error) {
	switch scheme {
	case SchemeByte:
		return assembleBytes(tokens)
	case SchemeWord:
		return assembleWords(tokens)
	default:
		return Values{}, NewError(KindConfig, fmt.Sprintf("unsupported scheme %s", scheme))
	}
}

func assembleBytes(tokens []string) (Values, error) {
	out := make([]uint8, len(tokens))
	for i, t := range tokens {
		b, err := parseToken(t, i)
		if err != nil {
			return Values{}, err
		}
		out[i] = b
	}
	return Values{Scheme: SchemeByte, Bytes: out}, nil
}

func assembleWords(tokens []string) (Values, error) {
	if len(tokens)%2 != 0 {
		return Values{}, NewError(KindOddTokenCount,
			fmt.Sprintf("word assembly needs an even token count, found %d", len(tokens)))
	}
	out := make([]int16, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		lo, err := parseToken(tokens[i], i)
		if err != nil {
			return Values{}, err
		}
		hi, err := parseToken(tokens[i+1], i+1)
		if err != nil {
			return Values{}, err
		}
		out = append(out, int16(uint16(hi)<<8|uint16(lo)))
	}
	return Values{Scheme: SchemeWord, Words: out}, nil
}

func parseToken(t string, index int) (uint8, error) {
	if !isHexToken(t) {
		return 0, NewError(KindMalformedToken, fmt.Sprintf("token %d (%q) is not a two-digit hex byte", index, t))
	}
	return hexVal(t[0])<<4 | hexVal(t[1]), nil
}
