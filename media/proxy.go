package media

import (
	"regexp"
	"strings"
)

// ProxyFunc rewrites an image URL before it is loaded.
type ProxyFunc func(url string) string

var dataURIPattern = regexp.MustCompile(`^data:image/\w+;base64,`)

// IsDataURI reports whether url is an inline base64 image.
func IsDataURI(url string) bool {
	return dataURIPattern.MatchString(url)
}

// Proxy returns a ProxyFunc that maps "" to "", leaves inline base64 images
// unchanged and rewrites every other URL to apiPrefix followed by the
// component-encoded URL.
func Proxy(apiPrefix string) ProxyFunc {
	return func(url string) string {
		if url == "" {
			return ""
		}
		if IsDataURI(url) {
			return url
		}
		return apiPrefix + EncodeURIComponent(url)
	}
}

// Identity is a ProxyFunc that returns url unchanged.
func Identity(url string) string { return url }

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s like ECMAScript encodeURIComponent:
// every UTF-8 byte except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped.
func EncodeURIComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
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
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
