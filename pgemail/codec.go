// Package pgemail teaches pgx about the PostgreSQL email type.
//
// The server type stores an address as (local, domain) and its binary send
// and receive functions use two NUL-terminated strings, which is exactly the
// email package's wire form. Codec speaks both that binary format and the
// text format, and scans into email.Address or string.
//
// Usage with a single connection:
//
//	conn, _ := pgx.Connect(ctx, dsn)
//	if err := pgemail.Register(ctx, conn, logger); err != nil {
//	    return err
//	}
//	var a email.Address
//	err := conn.QueryRow(ctx, "SELECT addr FROM contacts WHERE id = $1", id).Scan(&a)
//
// For pools, see db/postgres, which registers the type on every new connection.
package pgemail

import (
	"database/sql/driver"
	"fmt"

	"github.com/dalemusser/emailaddr/email"
	"github.com/dalemusser/emailaddr/errors"
	"github.com/jackc/pgx/v5/pgtype"
)

// Codec is a pgtype.Codec for the email type.
type Codec struct {
	// Strict applies the stricter grammar to strings encoded as parameters.
	// Values coming back from the server are never re-checked strictly.
	Strict bool
}

func (Codec) FormatSupported(format int16) bool {
	return format == pgtype.TextFormatCode || format == pgtype.BinaryFormatCode
}

func (Codec) PreferredFormat() int16 {
	return pgtype.BinaryFormatCode
}

func (c Codec) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	switch format {
	case pgtype.BinaryFormatCode:
		switch value.(type) {
		case email.Address:
			return encodePlanAddressBinary{}
		case string:
			return encodePlanStringBinary{strict: c.Strict}
		}
	case pgtype.TextFormatCode:
		switch value.(type) {
		case email.Address:
			return encodePlanAddressText{}
		case string:
			return encodePlanStringText{strict: c.Strict}
		}
	}
	return nil
}

type encodePlanAddressBinary struct{}

func (encodePlanAddressBinary) Encode(value any, buf []byte) ([]byte, error) {
	a := value.(email.Address)
	if a.IsZero() {
		return nil, nil
	}
	return a.AppendBinary(buf)
}

type encodePlanAddressText struct{}

func (encodePlanAddressText) Encode(value any, buf []byte) ([]byte, error) {
	a := value.(email.Address)
	if a.IsZero() {
		return nil, nil
	}
	return append(buf, a.String()...), nil
}

type encodePlanStringBinary struct{ strict bool }

func (p encodePlanStringBinary) Encode(value any, buf []byte) ([]byte, error) {
	a, err := email.Parse(value.(string), email.WithStrict(p.strict))
	if err != nil {
		return nil, err
	}
	return a.AppendBinary(buf)
}

type encodePlanStringText struct{ strict bool }

func (p encodePlanStringText) Encode(value any, buf []byte) ([]byte, error) {
	a, err := email.Parse(value.(string), email.WithStrict(p.strict))
	if err != nil {
		return nil, err
	}
	return append(buf, a.String()...), nil
}

func (Codec) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	switch target.(type) {
	case *email.Address:
		if format == pgtype.BinaryFormatCode {
			return scanPlanBinaryAddress{}
		}
		return scanPlanTextAddress{}
	case *string:
		if format == pgtype.BinaryFormatCode {
			return scanPlanBinaryString{}
		}
		return scanPlanTextString{}
	}
	return nil
}

// decode turns a non-NULL column value into an Address.
func decode(format int16, src []byte) (email.Address, error) {
	var a email.Address
	var err error
	if format == pgtype.BinaryFormatCode {
		err = a.UnmarshalBinary(src)
	} else {
		a, err = email.Parse(string(src))
	}
	return a, err
}

type scanPlanBinaryAddress struct{}

func (scanPlanBinaryAddress) Scan(src []byte, dst any) error {
	p := dst.(*email.Address)
	if src == nil {
		*p = email.Address{}
		return nil
	}
	a, err := decode(pgtype.BinaryFormatCode, src)
	if err != nil {
		return err
	}
	*p = a
	return nil
}

type scanPlanTextAddress struct{}

func (scanPlanTextAddress) Scan(src []byte, dst any) error {
	p := dst.(*email.Address)
	if src == nil {
		*p = email.Address{}
		return nil
	}
	a, err := decode(pgtype.TextFormatCode, src)
	if err != nil {
		return err
	}
	*p = a
	return nil
}

type scanPlanBinaryString struct{}

func (scanPlanBinaryString) Scan(src []byte, dst any) error {
	if src == nil {
		return fmt.Errorf("cannot scan NULL into %T", dst)
	}
	a, err := decode(pgtype.BinaryFormatCode, src)
	if err != nil {
		return err
	}
	*dst.(*string) = a.String()
	return nil
}

type scanPlanTextString struct{}

func (scanPlanTextString) Scan(src []byte, dst any) error {
	if src == nil {
		return fmt.Errorf("cannot scan NULL into %T", dst)
	}
	*dst.(*string) = string(src)
	return nil
}

func (c Codec) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	if src == nil {
		return nil, nil
	}
	a, err := decode(format, src)
	if err != nil {
		return nil, err
	}
	return a.String(), nil
}

func (c Codec) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	a, err := decode(format, src)
	if err != nil {
		return nil, errors.From(err).WithDetail("oid", oid)
	}
	return a, nil
}
