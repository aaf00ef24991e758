// internal/emailctl/emailctl.go
package emailctl

import (
	"fmt"
	"io"

	"github.com/dalemusser/emailaddr/config"
	"github.com/dalemusser/emailaddr/email"
	"github.com/dalemusser/emailaddr/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Run is the emailctl entrypoint.
//
// binName is the CLI name to show in usage text. args excludes the binary
// name (i.e. os.Args[1:]). It returns a process exit code; callers should
// os.Exit(Run(...)).
func Run(binName string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr, binName)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			usage(stdout, binName)
			return 0
		}
		fmt.Fprintf(stderr, "unknown command: %q\n\n", args[0])
		usage(stderr, binName)
		return 2
	}

	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.DefineFlags(fs)
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s %s %s\n", binName, args[0], cmd.args)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < cmd.minArgs || (cmd.maxArgs >= 0 && fs.NArg() > cmd.maxArgs) {
		fs.Usage()
		return 2
	}

	boot := logging.BootstrapLogger()
	cfg, err := config.Load(boot, fs)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	logger, err := logging.BuildLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		logger = boot
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("config loaded", zap.String("config", cfg.Dump()))

	env := &env{
		cfg:    cfg,
		fs:     fs,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	return cmd.run(env, fs.Args())
}

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	fs     *pflag.FlagSet
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (e *env) parseOptions() []email.ParseOption {
	return []email.ParseOption{email.WithStrict(e.cfg.Strict)}
}

type command struct {
	args    string
	summary string
	minArgs int
	maxArgs int // -1 for no limit
	flags   func(*pflag.FlagSet)
	run     func(e *env, args []string) int
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"parse":   {args: "<address>...", summary: "validate addresses and show their parts", minArgs: 1, maxArgs: -1, run: runParse},
		"format":  {args: "<local> <domain>", summary: "build an address from its parts", minArgs: 2, maxArgs: 2, run: runFormat},
		"compare": {args: "<a> <b>", summary: "compare two addresses", minArgs: 2, maxArgs: 2, run: runCompare},
		"sort":    {args: "", summary: "sort addresses read from stdin, one per line", maxArgs: 0, flags: sortFlags, run: runSort},
		"encode":  {args: "<address>", summary: "print the hex wire encoding of an address", minArgs: 1, maxArgs: 1, run: runEncode},
		"decode":  {args: "<hex>", summary: "decode a hex wire encoding", minArgs: 1, maxArgs: 1, run: runDecode},
		"pgcheck": {args: "<address>...", summary: "round-trip addresses through a PostgreSQL email column type", minArgs: 1, maxArgs: -1, run: runPGCheck},
		"dbcheck": {args: "", summary: "check every configured database is reachable and email-aware", maxArgs: 0, run: runDBCheck},
	}
}

var commandOrder = []string{"parse", "format", "compare", "sort", "encode", "decode", "pgcheck", "dbcheck"}

func usage(w io.Writer, binName string) {
	fmt.Fprintf(w, "%s: email address tool\n\n", binName)
	fmt.Fprintln(w, "Usage:")
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(w, "  %s %s %s\n      %s\n", binName, name, c.args, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags: --strict, -o text|json|yaml, --log_level, --postgres_dsn, --sqlite_path, --mongo_uri")
	fmt.Fprintln(w, "Every flag can also be set as EMAILADDR_<FLAG> or in config.yaml.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintf(w, "  sort -u addresses.txt | %s sort --domain -o json\n", binName)
}
