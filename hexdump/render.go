package hexdump

import (
	"strconv"
	"strings"
)

// Render formats values in base 10 joined by single spaces. Words render
// signed, bytes unsigned. No leading or trailing separator is written.
func Render(v Values) string {
	var sb strings.Builder
	n := v.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v.Scheme == SchemeByte {
			sb.WriteString(strconv.FormatUint(uint64(v.Bytes[i]), 10))
		} else {
			sb.WriteString(strconv.FormatInt(int64(v.Words[i]), 10))
		}
	}
	return sb.String()
}
