package transport

import "strings"

const hexDigits = "0123456789ABCDEF"

// Requote percent-encodes every byte that may not appear literally in a
// URL, leaving existing escapes and reserved delimiters alone. Query text
// such as `"` and `>` in a CQL clause is escaped; `%20` stays `%20`. A `#`
// is always escaped so raw fragments cannot cut the query short.
func Requote(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func safe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~:/?[]@!$&'()*+,;=%", c) >= 0
}
