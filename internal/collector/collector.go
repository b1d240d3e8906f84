// Package collector assembles the inventory snapshot from its configured
// sources. Sources register themselves; the orchestrator runs every
// enabled one against a shared snapshot.
package collector

import (
	"github.com/acourtel/stackgraph/internal/config"
	"github.com/acourtel/stackgraph/internal/model"
)

// CollectResult holds the result of a single collector run.
type CollectResult struct {
	Name    string
	Skipped bool
	Detail  string
	Err     error
}

// Collect runs all registered collectors and returns the merged snapshot.
func Collect(cfg *config.Config) (*model.Snapshot, []CollectResult, error) {
	snap := model.NewSnapshot()
	rawSources := cfg.RawSources

	var results []CollectResult

	for _, c := range All() {
		meta := c.Metadata()

		if !c.Enabled(rawSources) {
			results = append(results, CollectResult{Name: meta.DisplayName, Skipped: true})
			continue
		}

		// Extract this collector's config section
		section, _ := rawSources[meta.ConfigKey].(map[string]any)
		if err := c.Configure(section); err != nil {
			cerr := &CollectorError{Collector: meta.DisplayName, Err: err}
			results = append(results, CollectResult{Name: meta.DisplayName, Err: cerr})
			return nil, results, cerr
		}

		if err := c.Collect(snap); err != nil {
			cerr := &CollectorError{Collector: meta.DisplayName, Err: err}
			results = append(results, CollectResult{Name: meta.DisplayName, Err: cerr})
			return nil, results, cerr
		}

		results = append(results, CollectResult{Name: meta.DisplayName})
	}

	return snap, results, nil
}
