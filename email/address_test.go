package email

import (
	"strings"
	"testing"

	"github.com/dalemusser/emailaddr/errors"
)

func TestIsValidChar(t *testing.T) {
	for _, c := range []byte("azAZ09.-") {
		if !IsValidChar(c) {
			t.Errorf("IsValidChar(%q) = false, want true", c)
		}
	}
	for _, c := range []byte("@ _+!/:;<=>?[\\]^`{|}~\x00\t\n\x7f") {
		if IsValidChar(c) {
			t.Errorf("IsValidChar(%q) = true, want false", c)
		}
	}
	for c := 0x80; c <= 0xff; c++ {
		if IsValidChar(byte(c)) {
			t.Errorf("IsValidChar(%#x) = true, want false", c)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		local  string
		domain string
	}{
		{"mixed case", "Alice@Example.com", "Alice", "Example.com"},
		{"digits and hyphens", "a1-b2@mail-01.example.org", "a1-b2", "mail-01.example.org"},
		{"dots in local", "first.last@example.com", "first.last", "example.com"},
		{"single char parts", "a@b", "a", "b"},
		{"domain may start with digit", "x@1.2.3.4", "x", "1.2.3.4"},
		{"baseline allows odd dots", "a..@..", "a..", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if a.Local() != tt.local || a.Domain() != tt.domain {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tt.in, a.Local(), a.Domain(), tt.local, tt.domain)
			}
			if got := a.String(); got != tt.in {
				t.Errorf("String() = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		reason string
	}{
		{"empty input", "", ReasonMissingSeparator},
		{"empty local", "@example.com", ReasonEmptyLocal},
		{"empty domain", "alice@", ReasonEmptyDomain},
		{"double separator", "alice@@example.com", ReasonMultipleSeparators},
		{"second separator later", "alice@example@com", ReasonMultipleSeparators},
		{"no separator", "alice.example.com", ReasonMissingSeparator},
		{"space in local", "al ice@example.com", ReasonInvalidCharacter},
		{"plus in local", "alice+tag@example.com", ReasonInvalidCharacter},
		{"underscore in domain", "alice@ex_ample.com", ReasonInvalidCharacter},
		{"trailing newline", "alice@example.com\n", ReasonInvalidCharacter},
		{"non-ascii", "alicé@example.com", ReasonInvalidCharacter},
		{"local starts with digit", "1alice@example.com", ReasonLocalStartsNonAlpha},
		{"local starts with dot", ".alice@example.com", ReasonLocalStartsNonAlpha},
		{"local starts with hyphen", "-alice@example.com", ReasonLocalStartsNonAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.in, a)
			}
			if !errors.Is(err, errors.ErrInvalidFormat) {
				t.Fatalf("Parse(%q) error = %v, want invalid_format", tt.in, err)
			}
			var e *errors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error is %T, want *errors.Error", err)
			}
			if e.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", e.Reason, tt.reason)
			}
			if e.Input != tt.in {
				t.Errorf("input = %q, want %q", e.Input, tt.in)
			}
			if !strings.HasPrefix(e.Message, "invalid input syntax for email address: ") {
				t.Errorf("message = %q", e.Message)
			}
			if e.SQLState() != errors.SQLStateInvalidTextRepresentation {
				t.Errorf("SQLState() = %q", e.SQLState())
			}
			if !a.IsZero() {
				t.Errorf("failed Parse returned non-zero address %v", a)
			}
		})
	}
}

func TestParseCapacity(t *testing.T) {
	longLocal := "a" + strings.Repeat("b", MaxFieldLen)
	longDomain := strings.Repeat("d", MaxFieldLen+1)
	okLocal := "a" + strings.Repeat("b", MaxFieldLen-1)
	okDomain := strings.Repeat("d", MaxFieldLen)

	if _, err := Parse(okLocal + "@" + okDomain); err != nil {
		t.Fatalf("fields at the bound rejected: %v", err)
	}

	for _, in := range []string{longLocal + "@x", "x@" + longDomain} {
		_, err := Parse(in)
		if !errors.Is(err, errors.ErrCapacityExceeded) {
			t.Errorf("Parse(len %d) error = %v, want capacity_exceeded", len(in), err)
		}
		if errors.Is(err, errors.ErrInvalidFormat) {
			t.Errorf("capacity error also matched invalid_format")
		}
	}
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		in     string
		reason string
	}{
		{"first.last@example.com", ""},
		{"a-b@mail.example.co", ""},
		{"alice@localhost", ReasonStrictDomain},
		{"alice@-bad.com", ReasonStrictDomain},
		{"alice@bad-.com", ReasonStrictDomain},
		{"alice@example..com", ReasonStrictDomain},
		{"alice.@example.com", ReasonStrictLocal},
		{"al..ice@example.com", ReasonStrictLocal},
	}

	for _, tt := range tests {
		_, baseErr := Parse(tt.in)
		if baseErr != nil {
			t.Fatalf("baseline Parse(%q) rejected: %v", tt.in, baseErr)
		}

		_, err := Parse(tt.in, Strict())
		if tt.reason == "" {
			if err != nil {
				t.Errorf("Parse(%q, Strict()) error: %v", tt.in, err)
			}
			continue
		}
		var e *errors.Error
		if !errors.As(err, &e) || e.Reason != tt.reason {
			t.Errorf("Parse(%q, Strict()) error = %v, want reason %q", tt.in, err, tt.reason)
		}
	}

	if _, err := Parse("alice@localhost", WithStrict(false)); err != nil {
		t.Errorf("WithStrict(false) still strict: %v", err)
	}
}

func TestNew(t *testing.T) {
	a, err := New("Bob", "Example.com")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if a.String() != "Bob@Example.com" {
		t.Errorf("String() = %q", a.String())
	}

	for _, parts := range [][2]string{{"", "example.com"}, {"bob", ""}, {"b@b", "example.com"}, {"9bob", "example.com"}} {
		if _, err := New(parts[0], parts[1]); !errors.Is(err, errors.ErrInvalidFormat) {
			t.Errorf("New(%q, %q) error = %v, want invalid_format", parts[0], parts[1], err)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()
	MustParse("@")
}

func TestZeroAddress(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Error("zero Address is not IsZero")
	}
	if a.String() != "" {
		t.Errorf("zero String() = %q", a.String())
	}
	if MustParse("a@b").IsZero() {
		t.Error("parsed Address reports IsZero")
	}
}
