package email

import (
	"cmp"
	"slices"
)

// Compare orders addresses by domain and then by local part, folding ASCII
// case in both steps. It returns -1, 0, or +1 and is a total order, so it
// can be passed directly to slices.SortFunc.
//
// Every relational predicate in this package is derived from Compare or
// CompareDomain, which keeps them consistent for index use.
func Compare(a, b Address) int {
	if c := compareFold(a.domain, b.domain); c != 0 {
		return c
	}
	return compareFold(a.local, b.local)
}

// CompareDomain orders addresses by domain only, folding ASCII case.
func CompareDomain(a, b Address) int {
	return compareFold(a.domain, b.domain)
}

func compareFold(x, y string) int {
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		cx, cy := foldByte(x[i]), foldByte(y[i])
		if cx != cy {
			return cmp.Compare(cx, cy)
		}
	}
	return cmp.Compare(len(x), len(y))
}

// Compare is the method form of the package-level Compare.
func (a Address) Compare(b Address) int { return Compare(a, b) }

// Less reports a < b.
func (a Address) Less(b Address) bool { return Compare(a, b) < 0 }

// LessOrEqual reports a <= b.
func (a Address) LessOrEqual(b Address) bool { return Compare(a, b) <= 0 }

// Equal reports a = b, ignoring ASCII case.
func (a Address) Equal(b Address) bool { return Compare(a, b) == 0 }

// NotEqual reports a <> b.
func (a Address) NotEqual(b Address) bool { return Compare(a, b) != 0 }

// GreaterOrEqual reports a >= b.
func (a Address) GreaterOrEqual(b Address) bool { return Compare(a, b) >= 0 }

// Greater reports a > b.
func (a Address) Greater(b Address) bool { return Compare(a, b) > 0 }

// DomainEqual reports whether a and b share a mail host (a ~ b).
func (a Address) DomainEqual(b Address) bool { return CompareDomain(a, b) == 0 }

// DomainNotEqual reports whether a and b have different mail hosts (a !~ b).
func (a Address) DomainNotEqual(b Address) bool { return CompareDomain(a, b) != 0 }

// Sort sorts addrs in place by Compare.
func Sort(addrs []Address) {
	slices.SortFunc(addrs, Compare)
}

// SortByDomain sorts addrs in place by CompareDomain, keeping the input
// order of addresses that share a domain.
func SortByDomain(addrs []Address) {
	slices.SortStableFunc(addrs, CompareDomain)
}
