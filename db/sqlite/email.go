package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dalemusser/emailaddr/email"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by this package. Its
// connections carry the EMAIL collation and the email_* SQL functions.
const DriverName = "sqlite3_email"

// CollationName orders TEXT columns holding addresses the way
// email.Compare does. Text that does not parse sorts after every valid
// address, bytewise among itself.
const CollationName = "EMAIL"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{ConnectHook: registerEmail})
}

// registerEmail installs the collation and functions on a new connection.
func registerEmail(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterCollation(CollationName, collate); err != nil {
		return err
	}

	funcs := []struct {
		name string
		impl any
	}{
		{"email_cmp", emailCmp},
		{"email_domain_cmp", emailDomainCmp},
		{"email_valid", emailValid},
		{"email_local", emailLocal},
		{"email_domain", emailDomain},
	}
	for _, f := range funcs {
		if err := conn.RegisterFunc(f.name, f.impl, true); err != nil {
			return err
		}
	}
	return nil
}

func collate(x, y string) int {
	a, errA := email.Parse(x)
	b, errB := email.Parse(y)
	switch {
	case errA == nil && errB == nil:
		return email.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func parsePair(x, y string) (email.Address, email.Address, error) {
	a, err := email.Parse(x)
	if err != nil {
		return a, email.Address{}, err
	}
	b, err := email.Parse(y)
	return a, b, err
}

// email_cmp(a, b) returns -1, 0 or 1.
func emailCmp(x, y string) (int64, error) {
	a, b, err := parsePair(x, y)
	if err != nil {
		return 0, err
	}
	return int64(email.Compare(a, b)), nil
}

// email_domain_cmp(a, b) compares domains only.
func emailDomainCmp(x, y string) (int64, error) {
	a, b, err := parsePair(x, y)
	if err != nil {
		return 0, err
	}
	return int64(email.CompareDomain(a, b)), nil
}

func emailValid(s string) bool {
	_, err := email.Parse(s)
	return err == nil
}

func emailLocal(s string) (string, error) {
	a, err := email.Parse(s)
	if err != nil {
		return "", err
	}
	return a.Local(), nil
}

func emailDomain(s string) (string, error) {
	a, err := email.Parse(s)
	if err != nil {
		return "", err
	}
	return a.Domain(), nil
}

// EmailCheck returns a health check that verifies db's connections carry the
// email functions, i.e. that db was opened through DriverName.
func EmailCheck(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var c int64
		if err := db.QueryRowContext(ctx, `SELECT email_cmp('a@x.com', 'A@X.COM')`).Scan(&c); err != nil {
			return err
		}
		if c != 0 {
			return fmt.Errorf("email_cmp returned %d, want 0", c)
		}
		return nil
	}
}
