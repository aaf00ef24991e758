package email

// byteRange is an inclusive range of accepted bytes.
type byteRange struct {
	lo, hi byte
}

// alphabet is the complete set of bytes permitted in either part of an
// address. The '@' separator is handled by the scanner, not here.
var alphabet = [...]byteRange{
	{'0', '9'},
	{'A', 'Z'},
	{'a', 'z'},
	{'.', '.'},
	{'-', '-'},
}

// IsValidChar reports whether c may appear in the local or domain part of
// an address.
func IsValidChar(c byte) bool {
	for _, r := range alphabet {
		if c >= r.lo && c <= r.hi {
			return true
		}
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// foldByte maps ASCII upper-case letters to lower case.
func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
