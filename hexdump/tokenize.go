package hexdump

import (
	"fmt"
	"strings"
)

// AddressBlockLen is the number of tokens in the address header row that
// leads every dump.
const AddressBlockLen = 16

// Extract returns the hex tokens found in text, in reading order.
//
// Text is split on whitespace runs. Words that are not exactly two bytes long,
// or that contain anything other than hex digits, are dropped silently.
func Extract(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if isHexToken(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// StripAddress removes the leading address block from tokens when enabled.
//
// The returned slice shares backing storage with tokens.
func StripAddress(tokens []string, enabled bool) ([]string, error) {
	if !enabled {
		return tokens, nil
	}
	if len(tokens) < AddressBlockLen {
		return nil, NewError(KindInsufficientTokens,
			fmt.Sprintf("address block needs %d tokens, found %d", AddressBlockLen, len(tokens)))
	}
	return tokens[AddressBlockLen:], nil
}

func isHexToken(s string) bool {
	return len(s) == 2 && isHexDigit(s[0]) && isHexDigit(s[1])
}

func isHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func hexVal(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
