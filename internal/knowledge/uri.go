// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

import "strings"

const (
	pathSafe     = "/:@&+?$,;=%"
	fragmentSafe = "=:&+/,%"
)

// looksLikeURI reports whether a course identifier should be resolved as a
// (possibly percent-encoded) IRI rather than a course name.
func looksLikeURI(id string) bool {
	low := strings.ToLower(id)
	return strings.HasPrefix(id, "http") ||
		strings.HasPrefix(low, "http%3a") ||
		strings.HasPrefix(low, "https%3a")
}

// uriVariants returns the raw identifier plus its once and twice
// percent-decoded forms.
func uriVariants(raw string) []string {
	once := unquote(raw)
	return []string{raw, once, unquote(once)}
}

// unquote percent-decodes each valid %XX escape in s. Malformed escapes
// and '+' are kept literally.
func unquote(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// quote percent-encodes every byte of s except unreserved characters and
// those listed in safe.
func quote(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte("0123456789ABCDEF"[c>>4])
		b.WriteByte("0123456789ABCDEF"[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// normalizeURI re-encodes the path, query and fragment of v so that
// identifiers with spaces or double-encoded segments match graph IRIs.
func normalizeURI(v string) string {
	scheme, netloc, path, query, fragment := splitURI(v)

	if strings.Contains(path, "%25") {
		path = unquote(path)
	}

	var b strings.Builder
	if scheme != "" {
		b.WriteString(scheme)
		b.WriteByte(':')
	}
	if netloc != "" || scheme != "" && strings.HasPrefix(path, "/") {
		b.WriteString("//")
		b.WriteString(netloc)
	}
	b.WriteString(quote(path, pathSafe))
	if query != "" {
		b.WriteByte('?')
		b.WriteString(quote(query, fragmentSafe))
	}
	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(quote(fragment, fragmentSafe))
	}
	return b.String()
}

// splitURI splits v into scheme, authority, path, query and fragment
// without decoding any component.
func splitURI(v string) (scheme, netloc, path, query, fragment string) {
	rest := v
	if i := strings.Index(rest, ":"); i > 0 && validScheme(rest[:i]) {
		scheme, rest = strings.ToLower(rest[:i]), rest[i+1:]
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		netloc, rest = rest[:end], rest[end:]
	}
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest, fragment = rest[:i], rest[i+1:]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, query = rest[:i], rest[i+1:]
	}
	return scheme, netloc, rest, query, fragment
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
