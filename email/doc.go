// Package email implements an email address value type for embedding in
// databases and wire protocols.
//
// An Address is parsed from text into a canonical (local, domain) pair,
// rendered back with String, ordered with Compare, and carried on the wire
// as two NUL-terminated strings:
//
//	a, err := email.Parse("Alice@Example.com")
//	if err != nil {
//	    // errors.Is(err, errors.ErrInvalidFormat)
//	}
//	a.Local()  // "Alice"
//	a.Domain() // "Example.com"
//
//	b := email.MustParse("alice@example.COM")
//	email.Compare(a, b) // 0: comparison folds ASCII case
//
// Ordering is domain-major: addresses sort by mail host first and by local
// part second, so sorted output groups addresses by domain.
//
// The accepted alphabet is deliberately small (ASCII letters, digits, '.'
// and '-'). Parse enforces only that the local part starts with a letter;
// pass Strict() to also require well-formed dot-separated atoms and a
// multi-label domain.
//
// Every function in this package is pure and safe for concurrent use.
package email
