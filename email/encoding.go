package email

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/dalemusser/emailaddr/errors"
)

// MarshalText implements encoding.TextMarshaler. The zero Address marshals
// as empty text.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse. Empty text
// decodes to the zero Address.
func (a *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Address{}
		return nil
	}
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON implements json.Marshaler. The zero Address is null.
func (a Address) MarshalJSON() ([]byte, error) {
	if a.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a JSON string or null.
func (a *Address) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Address{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, errors.CodeInvalidFormat, "email address must be a JSON string")
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Value implements driver.Valuer. The zero Address is stored as NULL.
func (a Address) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.String(), nil
}

// Scan implements sql.Scanner for text columns. NULL scans to the zero Address.
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case string:
		return a.scanText(v)
	case []byte:
		return a.scanText(string(v))
	case Address:
		*a = v
		return nil
	default:
		return errors.New(errors.CodeInvalidFormat, fmt.Sprintf("cannot scan %T into email.Address", src))
	}
}

func (a *Address) scanText(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
