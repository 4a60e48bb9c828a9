package preflight

import (
	"context"
	"path/filepath"

	"vidscope/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Detail   string `json:"detail" yaml:"detail"`
}

// Options selects which checks RunAll performs.
type Options struct {
	// Generator is probed for reachability when non-nil.
	Generator Generator
}

// RunAll executes every applicable preflight check for cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckYTDLP(ctx, cfg.YTDLP.Binary)}

	credentials := CheckCredentials(cfg)
	results = append(results, credentials)
	if credentials.Passed && opts.Generator != nil {
		results = append(results, CheckGenerator(ctx, "Generator API", opts.Generator))
	}

	if cfg.Metrics.Textfile != "" {
		result := CheckDirectoryAccess("Metrics textfile", filepath.Dir(cfg.Metrics.Textfile))
		result.Optional = true
		results = append(results, result)
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
