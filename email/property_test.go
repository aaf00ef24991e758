package email

import (
	"testing"

	"github.com/dalemusser/emailaddr/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const (
	letters       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	tokenAlphabet = letters + "0123456789.-"
)

func defaultTestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	params.MaxSize = 60
	return params
}

// tokenGen generates strings whose first byte is drawn from first and the
// rest from tokenAlphabet.
func tokenGen(first string) gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(first)-1),
		gen.SliceOf(gen.IntRange(0, len(tokenAlphabet)-1)),
	).Map(func(v []interface{}) string {
		b := []byte{first[v[0].(int)]}
		for _, i := range v[1].([]int) {
			b = append(b, tokenAlphabet[i])
		}
		return string(b)
	})
}

func localGen() gopter.Gen  { return tokenGen(letters) }
func domainGen() gopter.Gen { return tokenGen(tokenAlphabet) }

func addressGen() gopter.Gen {
	return gopter.CombineGens(localGen(), domainGen()).Map(func(v []interface{}) Address {
		return MustParse(v[0].(string) + "@" + v[1].(string))
	})
}

// flipCase toggles the case of letters in s selected by mask bits.
func flipCase(s string, mask uint64) string {
	b := []byte(s)
	for i, c := range b {
		if mask>>(uint(i)%64)&1 == 0 {
			continue
		}
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - ('a' - 'A')
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestProperty_ParseFormatRoundTrip(t *testing.T) {
	props := gopter.NewProperties(defaultTestParameters())

	props.Property("format(parse(s)) == s", prop.ForAll(
		func(local, domain string) bool {
			s := local + "@" + domain
			a, err := Parse(s)
			return err == nil && a.String() == s && a.Local() == local && a.Domain() == domain
		},
		localGen(), domainGen(),
	))

	props.Property("local not starting with a letter is rejected", prop.ForAll(
		func(local, domain string) bool {
			_, err := Parse(local + "@" + domain)
			return errors.Is(err, errors.ErrInvalidFormat)
		},
		tokenGen("0123456789.-"), domainGen(),
	))

	props.Property("a second separator is rejected", prop.ForAll(
		func(local, mid, domain string) bool {
			_, err := Parse(local + "@" + mid + "@" + domain)
			return errors.Is(err, errors.ErrInvalidFormat)
		},
		localGen(), gen.OneConstOf("", "x", "a.b"), domainGen(),
	))

	props.Property("no separator is rejected", prop.ForAll(
		func(s string) bool {
			_, err := Parse(s)
			return errors.Is(err, errors.ErrInvalidFormat)
		},
		localGen(),
	))

	props.TestingRun(t)
}

func TestProperty_TotalOrder(t *testing.T) {
	props := gopter.NewProperties(defaultTestParameters())

	props.Property("reflexive", prop.ForAll(
		func(a Address) bool { return Compare(a, a) == 0 && CompareDomain(a, a) == 0 },
		addressGen(),
	))

	props.Property("antisymmetric", prop.ForAll(
		func(a, b Address) bool { return sign(Compare(a, b)) == -sign(Compare(b, a)) },
		addressGen(), addressGen(),
	))

	props.Property("transitive", prop.ForAll(
		func(a, b, c Address) bool {
			if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
				return Compare(a, c) <= 0
			}
			return true
		},
		addressGen(), addressGen(), addressGen(),
	))

	props.Property("agrees with CompareDomain when domains differ", prop.ForAll(
		func(a, b Address) bool {
			d := CompareDomain(a, b)
			return d == 0 || sign(Compare(a, b)) == sign(d)
		},
		addressGen(), addressGen(),
	))

	props.Property("case-insensitive", prop.ForAll(
		func(a Address, mask uint64) bool {
			b := MustParse(flipCase(a.String(), mask))
			return Compare(a, b) == 0 && a.Equal(b) && a.DomainEqual(b)
		},
		addressGen(), gen.UInt64(),
	))

	props.TestingRun(t)
}

func TestProperty_WireRoundTrip(t *testing.T) {
	props := gopter.NewProperties(defaultTestParameters())

	props.Property("decode(encode(v)) == v byte for byte", prop.ForAll(
		func(a Address) bool {
			data, err := a.MarshalBinary()
			if err != nil {
				return false
			}
			var b Address
			if err := b.UnmarshalBinary(data); err != nil {
				return false
			}
			return b == a && b.Equal(a)
		},
		addressGen(),
	))

	props.TestingRun(t)
}
