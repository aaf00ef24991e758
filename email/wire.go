package email

import (
	"bytes"
	"io"
	"strings"

	"github.com/dalemusser/emailaddr/errors"
)

// Wire format: the local part then the domain part, each written as its
// bytes followed by a single NUL. There is no other header.

// AppendBinary appends the wire form of a to b. It implements
// encoding.BinaryAppender and never fails.
func (a Address) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, a.local...)
	b = append(b, 0)
	b = append(b, a.domain...)
	b = append(b, 0)
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a Address) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, len(a.local)+len(a.domain)+2))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must hold
// exactly one encoded address.
func (a *Address) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	v, err := Decode(r)
	if err != nil {
		return err
	}
	if r.Len() > 0 {
		return errors.Decode("trailing bytes after email address").
			WithDetail("trailing", r.Len())
	}
	*a = v
	return nil
}

// Decode reads one encoded address from r, consuming exactly its two
// records. The decoded parts are trusted to be canonical; only the capacity
// bound is checked.
func Decode(r io.ByteReader) (Address, error) {
	local, err := readRecord(r, "local")
	if err != nil {
		return Address{}, err
	}
	domain, err := readRecord(r, "domain")
	if err != nil {
		return Address{}, err
	}
	return construct(local, domain)
}

// readRecord reads bytes up to and including a NUL terminator.
func readRecord(r io.ByteReader, field string) (string, error) {
	var sb strings.Builder
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", errors.Decode("missing " + field + " record")
			}
			return "", errors.Decode("truncated " + field + " record: no terminator")
		}
		if err != nil {
			return "", errors.Wrap(err, errors.CodeDecodeError, "read "+field+" record")
		}
		if c == 0 {
			return sb.String(), nil
		}
		sb.WriteByte(c)
	}
}
