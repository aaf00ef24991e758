// health/health.go
package health

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Check represents a single health probe. It should return nil if the
// dependency is healthy, or a non-nil error describing the problem.
type Check func(ctx context.Context) error

// Report is the outcome of Run.
//
//	{ "status": "error", "checks": { "sqlite": "ok", "postgres": "error: ..." } }
type Report struct {
	Status string            `json:"status" yaml:"status"`
	Checks map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return r.Status == "ok"
}

// Names returns the check names in sorted order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r.Checks))
	for name := range r.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run runs every check in name order and collects the results.
// With no checks it reports { "status": "ok" }. A nil check counts as ok.
func Run(ctx context.Context, checks map[string]Check, logger *zap.Logger) Report {
	if len(checks) == 0 {
		return Report{Status: "ok"}
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(checks))
	anyErr := false

	for _, name := range names {
		check := checks[name]
		if check == nil {
			results[name] = "ok"
			continue
		}
		if err := check(ctx); err != nil {
			anyErr = true
			msg := "error"
			if err.Error() != "" {
				msg = "error: " + err.Error()
			}
			results[name] = msg

			if logger != nil {
				logger.Warn("health check failed",
					zap.String("check", name),
					zap.Error(err),
				)
			}
		} else {
			results[name] = "ok"
		}
	}

	if anyErr {
		return Report{Status: "error", Checks: results}
	}
	return Report{Status: "ok", Checks: results}
}

// Failed returns a check that always reports err. Use it for a dependency
// that could not even be opened.
func Failed(err error) Check {
	return func(context.Context) error { return err }
}
