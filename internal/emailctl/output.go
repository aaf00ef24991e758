package emailctl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dalemusser/emailaddr/email"
	"github.com/dalemusser/emailaddr/errors"
	"gopkg.in/yaml.v3"
)

// result describes one input for structured output.
type result struct {
	Input   string        `json:"input" yaml:"input"`
	Address string        `json:"address,omitempty" yaml:"address,omitempty"`
	Local   string        `json:"local,omitempty" yaml:"local,omitempty"`
	Domain  string        `json:"domain,omitempty" yaml:"domain,omitempty"`
	Wire    string        `json:"wire,omitempty" yaml:"wire,omitempty"`
	Error   *errors.Error `json:"error,omitempty" yaml:"error,omitempty"`
}

func newResult(input string, a email.Address, err error) result {
	r := result{Input: input}
	if err != nil {
		r.Error = errors.From(err)
		return r
	}
	r.Address = a.String()
	r.Local = a.Local()
	r.Domain = a.Domain()
	return r
}

// render writes v in the configured structured format, or calls text for
// plain output.
func (e *env) render(v any, text func(w io.Writer)) error {
	switch e.cfg.Output {
	case "json":
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(e.stdout)
		return nil
	}
}

// fail reports err and returns exit code 1. Structured formats get the
// error on stdout so pipelines see a parseable document.
func (e *env) fail(err error) int {
	switch e.cfg.Output {
	case "json":
		_ = errors.WriteWithLogger(e.stdout, err, e.logger)
	case "yaml":
		_ = e.render(errors.Response{Error: errors.From(err)}, nil)
	default:
		ee := errors.From(err)
		e.logger.Debug("command failed", errors.Fields(ee)...)
		fmt.Fprintln(e.stderr, "error:", ee.Message)
	}
	return 1
}
