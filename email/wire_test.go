package email

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/dalemusser/emailaddr/errors"
)

func TestMarshalBinary(t *testing.T) {
	a := MustParse("Alice@Example.com")
	got, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary error: %v", err)
	}
	want := []byte("Alice\x00Example.com\x00")
	if !bytes.Equal(got, want) {
		t.Fatalf("MarshalBinary = %q, want %q", got, want)
	}

	var b Address
	if err := b.UnmarshalBinary(got); err != nil {
		t.Fatalf("UnmarshalBinary error: %v", err)
	}
	if b != a {
		t.Errorf("round trip = %#v, want %#v", b, a)
	}
}

func TestAppendBinary(t *testing.T) {
	prefix := []byte{0xff}
	out, err := MustParse("a@b").AppendBinary(prefix)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte("\xffa\x00b\x00"); !bytes.Equal(out, want) {
		t.Errorf("AppendBinary = %q, want %q", out, want)
	}
}

func TestDecodeStream(t *testing.T) {
	var buf []byte
	inputs := []string{"a@x.com", "Bob@Y.org", "c-d@z"}
	for _, s := range inputs {
		buf, _ = MustParse(s).AppendBinary(buf)
	}
	buf = append(buf, "rest"...)

	r := bufio.NewReader(bytes.NewReader(buf))
	for _, s := range inputs {
		a, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if a.String() != s {
			t.Errorf("Decode = %q, want %q", a, s)
		}
	}
	rest, _ := r.ReadString(0)
	if rest != "rest" {
		t.Errorf("Decode consumed too much; rest = %q", rest)
	}
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"empty", "", errors.CodeDecodeError},
		{"one record", "alice\x00", errors.CodeDecodeError},
		{"truncated local", "alice", errors.CodeDecodeError},
		{"truncated domain", "alice\x00example.com", errors.CodeDecodeError},
		{"trailing bytes", "alice\x00example.com\x00x", errors.CodeDecodeError},
		{"third record", "a\x00b\x00c\x00", errors.CodeDecodeError},
		{"local over capacity", strings.Repeat("a", MaxFieldLen+1) + "\x00b\x00", errors.CodeCapacityExceeded},
		{"domain over capacity", "a\x00" + strings.Repeat("b", MaxFieldLen+1) + "\x00", errors.CodeCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParse("keep@me.com")
			err := a.UnmarshalBinary([]byte(tt.data))
			if err == nil {
				t.Fatalf("UnmarshalBinary(%q) succeeded", tt.data)
			}
			if got := errors.From(err).Code; got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
			if a.String() != "keep@me.com" {
				t.Errorf("receiver modified on error: %v", a)
			}
		})
	}
}

func TestDecodeErrorSQLState(t *testing.T) {
	var a Address
	err := a.UnmarshalBinary([]byte("x"))
	if !errors.Is(err, errors.ErrDecode) {
		t.Fatalf("error = %v, want decode_error", err)
	}
	if got := errors.From(err).SQLState(); got != errors.SQLStateInvalidBinaryRepresentation {
		t.Errorf("SQLState() = %q", got)
	}
}

func TestZeroRoundTrip(t *testing.T) {
	data, _ := Address{}.MarshalBinary()
	if !bytes.Equal(data, []byte{0, 0}) {
		t.Fatalf("zero MarshalBinary = %q", data)
	}
	var a Address
	if err := a.UnmarshalBinary(data); err != nil || !a.IsZero() {
		t.Errorf("zero round trip = %v, %v", a, err)
	}
}
