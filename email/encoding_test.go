package email

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/dalemusser/emailaddr/errors"
	"gopkg.in/yaml.v3"
)

type contact struct {
	Name  string  `json:"name" yaml:"name"`
	Email Address `json:"email" yaml:"email"`
}

func TestJSON(t *testing.T) {
	c := contact{Name: "Bob", Email: MustParse("Bob@Example.com")}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"name":"Bob","email":"Bob@Example.com"}`; string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}

	var back contact
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Email != c.Email {
		t.Errorf("round trip = %v, want %v", back.Email, c.Email)
	}

	data, _ = json.Marshal(contact{Name: "nobody"})
	if want := `{"name":"nobody","email":null}`; string(data) != want {
		t.Errorf("zero json = %s, want %s", data, want)
	}
	if err := json.Unmarshal(data, &back); err != nil || !back.Email.IsZero() {
		t.Errorf("null decode = %v, %v", back.Email, err)
	}

	err = json.Unmarshal([]byte(`{"email":"@nope"}`), &back)
	if !errors.Is(err, errors.ErrInvalidFormat) {
		t.Errorf("invalid json address error = %v", err)
	}
	err = json.Unmarshal([]byte(`{"email":42}`), &back)
	if !errors.Is(err, errors.ErrInvalidFormat) {
		t.Errorf("non-string json address error = %v", err)
	}
}

func TestYAML(t *testing.T) {
	var c contact
	if err := yaml.Unmarshal([]byte("name: Ann\nemail: Ann@Example.org\n"), &c); err != nil {
		t.Fatal(err)
	}
	if c.Email.Local() != "Ann" || c.Email.Domain() != "Example.org" {
		t.Errorf("yaml decode = %#v", c.Email)
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var back contact
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back.Email != c.Email {
		t.Errorf("yaml round trip = %v, want %v (%q)", back.Email, c.Email, out)
	}

	if err := yaml.Unmarshal([]byte("email: bad@@x\n"), &c); err == nil {
		t.Error("yaml accepted invalid address")
	}
}

func TestSQL(t *testing.T) {
	a := MustParse("Carol@Example.net")
	v, err := a.Value()
	if err != nil || v != driver.Value("Carol@Example.net") {
		t.Fatalf("Value() = %v, %v", v, err)
	}
	if v, _ := (Address{}).Value(); v != nil {
		t.Errorf("zero Value() = %v, want nil", v)
	}

	tests := []struct {
		name string
		src  any
		want string
		ok   bool
	}{
		{"string", "Carol@Example.net", "Carol@Example.net", true},
		{"bytes", []byte("d@e.f"), "d@e.f", true},
		{"null", nil, "", true},
		{"address", a, "Carol@Example.net", true},
		{"invalid text", "nope", "", false},
		{"wrong type", 42, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Address
			err := got.Scan(tt.src)
			if tt.ok != (err == nil) {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if got.String() != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	var a Address
	if err := a.UnmarshalText([]byte("x@y")); err != nil {
		t.Fatal(err)
	}
	text, _ := a.MarshalText()
	if string(text) != "x@y" {
		t.Errorf("MarshalText = %q", text)
	}
	if err := a.UnmarshalText(nil); err != nil || !a.IsZero() {
		t.Errorf("empty UnmarshalText = %v, %v", a, err)
	}
}
