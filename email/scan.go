package email

// scanLocal walks s up to the first '@' and returns its index. Every byte
// before the separator must pass IsValidChar. On failure it returns a
// non-empty reason and the index is meaningless.
func scanLocal(s string) (at int, reason string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '@' {
			if i == 0 {
				return 0, ReasonEmptyLocal
			}
			return i, ""
		}
		if !IsValidChar(c) {
			return 0, ReasonInvalidCharacter
		}
	}
	return 0, ReasonMissingSeparator
}

// scanDomain walks s from start (just past the separator) to the end and
// returns the exclusive end index of the domain part. A second '@' is an
// error, as is any byte rejected by IsValidChar.
func scanDomain(start int, s string) (end int, reason string) {
	if start >= len(s) {
		return 0, ReasonEmptyDomain
	}
	for i := start; i < len(s); i++ {
		c := s[i]
		if c == '@' {
			return 0, ReasonMultipleSeparators
		}
		if !IsValidChar(c) {
			return 0, ReasonInvalidCharacter
		}
	}
	return len(s), ""
}
