package email

import "strings"

const upperhex = "0123456789ABCDEF"

// BuildLink returns a mailto URI with every recipient in BCC.
func BuildLink(recipients []string, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:?bcc=")
	b.WriteString(Escape(strings.Join(recipients, ",")))
	b.WriteString("&subject=")
	b.WriteString(Escape(subject))
	b.WriteString("&body=")
	b.WriteString(Escape(body))
	return b.String()
}

// Escape percent-encodes every byte of s outside the RFC 3986 unreserved
// set. Unlike url.QueryEscape it never turns a space into '+' and it
// escapes '/', ':' and '@'.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
