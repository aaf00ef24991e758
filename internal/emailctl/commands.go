package emailctl

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dalemusser/emailaddr/db/mongo"
	"github.com/dalemusser/emailaddr/db/postgres"
	"github.com/dalemusser/emailaddr/db/sqlite"
	"github.com/dalemusser/emailaddr/email"
	"github.com/dalemusser/emailaddr/errors"
	"github.com/dalemusser/emailaddr/health"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func runParse(e *env, args []string) int {
	results := make([]result, 0, len(args))
	failed := false
	for _, s := range args {
		a, err := email.Parse(s, e.parseOptions()...)
		if err != nil {
			failed = true
			e.logger.Debug("rejected address", errors.Fields(errors.From(err))...)
		}
		results = append(results, newResult(s, a, err))
	}

	err := e.render(results, func(w io.Writer) {
		for _, r := range results {
			if r.Error != nil {
				fmt.Fprintf(w, "invalid\t%s\t%s\n", r.Input, r.Error.Message)
				continue
			}
			fmt.Fprintf(w, "valid\t%s\tlocal=%s\tdomain=%s\n", r.Address, r.Local, r.Domain)
		}
	})
	if err != nil {
		return e.fail(err)
	}
	if failed {
		return 1
	}
	return 0
}

func runFormat(e *env, args []string) int {
	a, err := email.New(args[0], args[1], e.parseOptions()...)
	if err != nil {
		return e.fail(err)
	}
	r := newResult(args[0]+"@"+args[1], a, nil)
	if err := e.render(r, func(w io.Writer) { fmt.Fprintln(w, a) }); err != nil {
		return e.fail(err)
	}
	return 0
}

type comparison struct {
	A              string `json:"a" yaml:"a"`
	B              string `json:"b" yaml:"b"`
	Compare        int    `json:"compare" yaml:"compare"`
	CompareDomain  int    `json:"compare_domain" yaml:"compare_domain"`
	Less           bool   `json:"lt" yaml:"lt"`
	LessOrEqual    bool   `json:"le" yaml:"le"`
	Equal          bool   `json:"eq" yaml:"eq"`
	NotEqual       bool   `json:"ne" yaml:"ne"`
	GreaterOrEqual bool   `json:"ge" yaml:"ge"`
	Greater        bool   `json:"gt" yaml:"gt"`
	DomainEqual    bool   `json:"domain_eq" yaml:"domain_eq"`
	DomainNotEqual bool   `json:"domain_ne" yaml:"domain_ne"`
}

func runCompare(e *env, args []string) int {
	a, err := email.Parse(args[0], e.parseOptions()...)
	if err != nil {
		return e.fail(err)
	}
	b, err := email.Parse(args[1], e.parseOptions()...)
	if err != nil {
		return e.fail(err)
	}

	c := comparison{
		A:              a.String(),
		B:              b.String(),
		Compare:        email.Compare(a, b),
		CompareDomain:  email.CompareDomain(a, b),
		Less:           a.Less(b),
		LessOrEqual:    a.LessOrEqual(b),
		Equal:          a.Equal(b),
		NotEqual:       a.NotEqual(b),
		GreaterOrEqual: a.GreaterOrEqual(b),
		Greater:        a.Greater(b),
		DomainEqual:    a.DomainEqual(b),
		DomainNotEqual: a.DomainNotEqual(b),
	}
	err = e.render(c, func(w io.Writer) {
		fmt.Fprintf(w, "compare\t%d\n", c.Compare)
		fmt.Fprintf(w, "domain\t%d\n", c.CompareDomain)
		fmt.Fprintf(w, "<\t%t\n<=\t%t\n=\t%t\n<>\t%t\n>=\t%t\n>\t%t\n~\t%t\n!~\t%t\n",
			c.Less, c.LessOrEqual, c.Equal, c.NotEqual, c.GreaterOrEqual, c.Greater,
			c.DomainEqual, c.DomainNotEqual)
	})
	if err != nil {
		return e.fail(err)
	}
	return 0
}

func sortFlags(fs *pflag.FlagSet) {
	fs.Bool("domain", false, "Sort by domain only, keeping input order within a domain")
	fs.Bool("skip-invalid", false, "Drop invalid lines instead of failing")
}

func runSort(e *env, _ []string) int {
	byDomain, _ := e.fs.GetBool("domain")
	skipInvalid, _ := e.fs.GetBool("skip-invalid")

	var addrs []email.Address
	verrs := errors.NewValidationErrors()

	sc := bufio.NewScanner(e.stdin)
	for line := 0; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		a, err := email.Parse(s, e.parseOptions()...)
		if err != nil {
			verrs.Add(line+1, s, err)
			continue
		}
		addrs = append(addrs, a)
	}
	if err := sc.Err(); err != nil {
		return e.fail(errors.Wrap(err, errors.CodeInternalError, "read stdin"))
	}

	if verrs.HasErrors() {
		for _, ie := range verrs.Errors {
			e.logger.Warn("invalid address", zap.Int("line", ie.Index), zap.String("input", ie.Input),
				zap.String("reason", ie.Err.Reason))
		}
		if !skipInvalid {
			return e.failBatch(verrs)
		}
	}

	if byDomain {
		email.SortByDomain(addrs)
	} else {
		email.Sort(addrs)
	}

	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	err := e.render(out, func(w io.Writer) {
		for _, s := range out {
			fmt.Fprintln(w, s)
		}
	})
	if err != nil {
		return e.fail(err)
	}
	return 0
}

// failBatch reports every failure in verrs.
func (e *env) failBatch(verrs *errors.ValidationErrors) int {
	if e.cfg.Output == "text" {
		for _, ie := range verrs.Errors {
			fmt.Fprintf(e.stderr, "line %d: %s\n", ie.Index, ie.Err.Message)
		}
		return 1
	}
	_ = e.render(verrs, nil)
	return 1
}

func runEncode(e *env, args []string) int {
	a, err := email.Parse(args[0], e.parseOptions()...)
	if err != nil {
		return e.fail(err)
	}
	data, _ := a.MarshalBinary()

	r := newResult(args[0], a, nil)
	r.Wire = hex.EncodeToString(data)
	if err := e.render(r, func(w io.Writer) { fmt.Fprintln(w, r.Wire) }); err != nil {
		return e.fail(err)
	}
	return 0
}

func runDecode(e *env, args []string) int {
	data, err := hex.DecodeString(strings.TrimSpace(args[0]))
	if err != nil {
		return e.fail(errors.Wrap(err, errors.CodeDecodeError, "input is not hex"))
	}
	var a email.Address
	if err := a.UnmarshalBinary(data); err != nil {
		return e.fail(err)
	}

	r := newResult(args[0], a, nil)
	r.Wire = hex.EncodeToString(data)
	if err := e.render(r, func(w io.Writer) { fmt.Fprintln(w, a) }); err != nil {
		return e.fail(err)
	}
	return 0
}

type pgResult struct {
	Input  string `json:"input" yaml:"input"`
	Binary string `json:"binary" yaml:"binary"`
	Text   string `json:"text" yaml:"text"`
	Match  bool   `json:"match" yaml:"match"`
}

func runPGCheck(e *env, args []string) int {
	dsn := e.cfg.DB.PostgresDSN
	if dsn == "" {
		return e.fail(errors.New(errors.CodeInternalError, "pgcheck needs --postgres_dsn or EMAILADDR_POSTGRES_DSN"))
	}

	addrs := make([]email.Address, 0, len(args))
	for _, s := range args {
		a, err := email.Parse(s, e.parseOptions()...)
		if err != nil {
			return e.fail(err)
		}
		addrs = append(addrs, a)
	}

	conn, err := postgres.Connect(dsn, e.cfg.DB.DBConnectTimeout, postgres.Options{
		Strict:      e.cfg.Strict,
		RequireType: true,
		Logger:      e.logger,
	})
	if err != nil {
		return e.fail(errors.Wrap(err, errors.CodeInternalError, "connect to postgres"))
	}
	defer conn.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.DB.DBConnectTimeout)
	defer cancel()

	results := make([]pgResult, 0, len(addrs))
	allMatch := true
	for _, a := range addrs {
		var viaBinary email.Address
		var viaText string
		if err := conn.QueryRow(ctx, "SELECT $1::email", a).Scan(&viaBinary); err != nil {
			return e.fail(errors.Wrap(err, errors.CodeInternalError, "binary round trip"))
		}
		if err := conn.QueryRow(ctx, "SELECT $1::email::text", pgx.QueryExecModeSimpleProtocol, a.String()).Scan(&viaText); err != nil {
			return e.fail(errors.Wrap(err, errors.CodeInternalError, "text round trip"))
		}
		match := viaBinary == a && viaText == a.String()
		allMatch = allMatch && match
		results = append(results, pgResult{Input: a.String(), Binary: viaBinary.String(), Text: viaText, Match: match})
		e.logger.Info("pgcheck", zap.String("input", a.String()), zap.Bool("match", match))
	}

	err = e.render(results, func(w io.Writer) {
		for _, r := range results {
			status := "ok"
			if !r.Match {
				status = "MISMATCH"
			}
			fmt.Fprintf(w, "%s\t%s\tbinary=%s\ttext=%s\n", status, r.Input, r.Binary, r.Text)
		}
	})
	if err != nil {
		return e.fail(err)
	}
	if !allMatch {
		return 1
	}
	return 0
}

// dbChecks opens every configured database and returns one check per
// database plus a cleanup func that closes them.
func (e *env) dbChecks() (map[string]health.Check, func()) {
	db := e.cfg.DB
	checks := make(map[string]health.Check)
	var closers []func()

	if db.PostgresDSN != "" {
		pool, err := postgres.ConnectPool(db.PostgresDSN, db.DBConnectTimeout, postgres.Options{
			Strict:      e.cfg.Strict,
			RequireType: true,
			Logger:      e.logger,
		})
		if err != nil {
			checks["postgres"] = health.Failed(err)
		} else {
			checks["postgres"] = postgres.HealthCheck(pool)
			closers = append(closers, pool.Close)
		}
	}

	if db.SQLitePath != "" {
		sdb, err := sqlite.Connect(db.SQLitePath, db.DBConnectTimeout)
		if err != nil {
			checks["sqlite"] = health.Failed(err)
		} else {
			checks["sqlite"] = sqlite.EmailCheck(sdb)
			closers = append(closers, func() { _ = sdb.Close() })
		}
	}

	if db.MongoURI != "" {
		client, err := mongo.Connect(db.MongoURI, db.DBConnectTimeout)
		if err != nil {
			checks["mongo"] = health.Failed(err)
		} else {
			checks["mongo"] = mongo.HealthCheck(client)
			closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		}
	}

	return checks, func() {
		for _, c := range closers {
			c()
		}
	}
}

func runDBCheck(e *env, _ []string) int {
	checks, closeAll := e.dbChecks()
	defer closeAll()
	if len(checks) == 0 {
		return e.fail(errors.New(errors.CodeInternalError, "dbcheck needs at least one of --postgres_dsn, --sqlite_path, --mongo_uri"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.DB.DBConnectTimeout)
	defer cancel()

	report := health.Run(ctx, checks, e.logger)
	err := e.render(report, func(w io.Writer) {
		for _, name := range report.Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, report.Checks[name])
		}
	})
	if err != nil {
		return e.fail(err)
	}
	if !report.OK() {
		return 1
	}
	return 0
}
