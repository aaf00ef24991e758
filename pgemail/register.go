package pgemail

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dalemusser/emailaddr/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// TypeName is the SQL name of the email type.
const TypeName = "email"

// ErrTypeNotInstalled is returned by Register when the connected database
// has no visible email type.
var ErrTypeNotInstalled = stderrors.New("pgemail: email type is not installed in this database")

const lookupSQL = `SELECT t.oid, t.typarray FROM pg_catalog.pg_type t WHERE t.typname = $1 AND pg_catalog.pg_type_is_visible(t.oid)`

// Register looks up the email type on conn and registers Codec for it (and
// for email[] when the server defines the array type) in the connection's
// type map.
func Register(ctx context.Context, conn *pgx.Conn, logger *zap.Logger, opts ...Option) error {
	logger = logging.OrNop(logger)

	var oid, arrayOID uint32
	err := conn.QueryRow(ctx, lookupSQL, TypeName).Scan(&oid, &arrayOID)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return ErrTypeNotInstalled
	}
	if err != nil {
		return fmt.Errorf("pgemail: look up %s type: %w", TypeName, err)
	}

	RegisterType(conn.TypeMap(), oid, arrayOID, opts...)
	logger.Debug("registered email type",
		zap.Uint32("oid", oid),
		zap.Uint32("array_oid", arrayOID),
	)
	return nil
}

// Option configures the registered Codec.
type Option func(*Codec)

// WithStrict makes the codec reject parameters that fail the strict grammar.
func WithStrict() Option {
	return func(c *Codec) {
		c.Strict = true
	}
}

// RegisterType registers Codec in m under oid. A zero arrayOID skips the
// array type.
func RegisterType(m *pgtype.Map, oid, arrayOID uint32, opts ...Option) {
	var c Codec
	for _, opt := range opts {
		opt(&c)
	}

	t := &pgtype.Type{Name: TypeName, OID: oid, Codec: c}
	m.RegisterType(t)

	if arrayOID != 0 {
		m.RegisterType(&pgtype.Type{
			Name:  "_" + TypeName,
			OID:   arrayOID,
			Codec: &pgtype.ArrayCodec{ElementType: t},
		})
	}
}
