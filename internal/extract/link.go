package extract

import "strings"

// Kind classifies a raw link value by its scheme and shape.
type Kind int

const (
	// KindEmpty is an empty value or a bare "#".
	KindEmpty Kind = iota

	// KindExternal is an absolute http(s) URL or a protocol-relative "//" URL.
	KindExternal

	// KindIgnoredScheme is any other URI scheme: mailto:, tel:, javascript:, data:...
	KindIgnoredScheme

	// KindSamePage is a fragment-only reference such as "#top".
	KindSamePage

	// KindCrossPage has a non-empty path component, with or without fragment.
	KindCrossPage
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindExternal:
		return "external"
	case KindIgnoredScheme:
		return "ignored-scheme"
	case KindSamePage:
		return "same-page"
	case KindCrossPage:
		return "cross-page"
	default:
		return "unknown"
	}
}

// Internal reports whether links of this kind are validated.
func (k Kind) Internal() bool {
	return k == KindSamePage || k == KindCrossPage
}

// Classify returns the kind of a raw link value.
func Classify(raw string) Kind {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == "#":
		return KindEmpty
	case strings.HasPrefix(raw, "//"):
		return KindExternal
	case strings.HasPrefix(raw, "#"):
		return KindSamePage
	}

	if scheme, ok := uriScheme(raw); ok {
		switch strings.ToLower(scheme) {
		case "http", "https":
			return KindExternal
		default:
			return KindIgnoredScheme
		}
	}
	return KindCrossPage
}

// SplitFragment splits raw on its first '#'. hasFragment is false when
// raw contains no '#'.
func SplitFragment(raw string) (path, fragment string, hasFragment bool) {
	path, fragment, hasFragment = strings.Cut(raw, "#")
	return path, fragment, hasFragment
}

// uriScheme returns the RFC 3986 scheme of s if it has one.
// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":"
func uriScheme(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			if i == 0 {
				return "", false
			}
			return s[:i], true
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", false
		}
	}
	return "", false
}
