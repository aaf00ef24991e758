package email

import "regexp"

// ValidLocal reports whether a scanned local part satisfies the baseline
// structural rule: it must begin with an ASCII letter.
func ValidLocal(local string) bool {
	return local != "" && isLetter(local[0])
}

// ValidDomain reports whether a scanned domain part satisfies the baseline
// structural rules. The scanner already enforces the alphabet and
// non-emptiness, so nothing further is required here.
func ValidDomain(domain string) bool {
	return domain != ""
}

var (
	// dot-separated atoms, the first starting with a letter
	strictLocalRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*(\.[A-Za-z0-9-]+)*$`)

	// two or more labels; labels neither start nor end with '-'
	strictDomainRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)+$`)
)

// StrictLocal reports whether local matches the stricter grammar enabled by
// the Strict parse option.
func StrictLocal(local string) bool {
	return strictLocalRe.MatchString(local)
}

// StrictDomain reports whether domain matches the stricter grammar enabled
// by the Strict parse option.
func StrictDomain(domain string) bool {
	return strictDomainRe.MatchString(domain)
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strict bool
}

// Strict enables the stricter local and domain grammars on top of the
// baseline rules. It is never on by default.
func Strict() ParseOption {
	return func(o *parseOptions) {
		o.strict = true
	}
}

// WithStrict is Strict controlled by a flag, handy when the setting comes
// from configuration.
func WithStrict(on bool) ParseOption {
	return func(o *parseOptions) {
		o.strict = on
	}
}
