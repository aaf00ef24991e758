package email

import "github.com/dalemusser/emailaddr/errors"

// MaxFieldLen is the largest number of bytes either part of an address may hold.
const MaxFieldLen = 127

// Address is a parsed email address. The zero value is the null address; it
// is never returned by a successful Parse.
//
// Addresses are immutable values and may be copied, compared with Compare,
// and shared between goroutines freely. Note that == compares stored case;
// use Equal for address equality.
type Address struct {
	local  string
	domain string
}

// Parse validates s and returns its canonical form. Failures are
// *errors.Error values matching errors.ErrInvalidFormat or
// errors.ErrCapacityExceeded.
func Parse(s string, opts ...ParseOption) (Address, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	at, reason := scanLocal(s)
	if reason != "" {
		return Address{}, invalidFormat(s, reason)
	}
	end, reason := scanDomain(at+1, s)
	if reason != "" {
		return Address{}, invalidFormat(s, reason)
	}
	local, domain := s[:at], s[at+1:end]

	if !ValidLocal(local) {
		return Address{}, invalidFormat(s, ReasonLocalStartsNonAlpha)
	}
	if !ValidDomain(domain) {
		return Address{}, invalidFormat(s, ReasonInvalidDomain)
	}
	if o.strict {
		if !StrictLocal(local) {
			return Address{}, invalidFormat(s, ReasonStrictLocal)
		}
		if !StrictDomain(domain) {
			return Address{}, invalidFormat(s, ReasonStrictDomain)
		}
	}

	return construct(local, domain)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level variables.
func MustParse(s string, opts ...ParseOption) Address {
	a, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// New builds an Address from an already-split local and domain part,
// applying the same rules as Parse.
func New(local, domain string, opts ...ParseOption) (Address, error) {
	return Parse(local+"@"+domain, opts...)
}

// construct enforces the capacity bound. Callers are responsible for every
// other invariant.
func construct(local, domain string) (Address, error) {
	if len(local) > MaxFieldLen {
		return Address{}, errors.CapacityExceeded("local", local, MaxFieldLen)
	}
	if len(domain) > MaxFieldLen {
		return Address{}, errors.CapacityExceeded("domain", domain, MaxFieldLen)
	}
	return Address{local: local, domain: domain}, nil
}

// Local returns the part before the '@', in its stored case.
func (a Address) Local() string { return a.local }

// Domain returns the part after the '@', in its stored case.
func (a Address) Domain() string { return a.domain }

// IsZero reports whether a is the null address.
func (a Address) IsZero() bool {
	return a.local == "" && a.domain == ""
}

// String renders a as local@domain with the stored case. The zero Address
// renders as "".
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.local + "@" + a.domain
}
