package collector

import (
	"fmt"
	"os"

	"github.com/acourtel/stackgraph/internal/model"
	"github.com/acourtel/stackgraph/internal/util"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(func() RegisteredCollector { return &InventoryCollector{} })
}

// InventoryCollector reads a relational snapshot from a YAML inventory
// file: servers, services, credentials, domains, and dependency records
// with integer ids. This is the canonical hand-off point from whatever
// system owns the inventory data.
type InventoryCollector struct {
	Path string
}

func (ic *InventoryCollector) Metadata() CollectorMetadata {
	return CollectorMetadata{
		Name:        "inventory",
		DisplayName: "Inventory File",
		Description: "Reads servers, services, credentials and domains from a YAML inventory",
		ConfigKey:   "inventory",
		DetectHint:  "inventory.yml",
	}
}

func (ic *InventoryCollector) Enabled(sources map[string]any) bool {
	section, ok := sources["inventory"].(map[string]any)
	if !ok {
		return false
	}
	path, _ := section["path"].(string)
	return path != ""
}

func (ic *InventoryCollector) Configure(section map[string]any) error {
	if section == nil {
		return nil
	}
	if v, ok := section["path"].(string); ok {
		ic.Path = v
	}
	return nil
}

func (ic *InventoryCollector) Validate() []ValidationError {
	var errs []ValidationError
	path := util.ExpandPath(ic.Path)
	if _, err := os.Stat(path); err != nil {
		errs = append(errs, ValidationError{
			Field:      "sources.inventory.path",
			Message:    fmt.Sprintf("file not found: %s", ic.Path),
			Suggestion: "check the path or remove this entry",
		})
	}
	return errs
}

func (ic *InventoryCollector) Collect(snap *model.Snapshot) error {
	data, err := os.ReadFile(util.ExpandPath(ic.Path))
	if err != nil {
		return fmt.Errorf("reading inventory %s: %w", ic.Path, err)
	}

	var in model.Snapshot
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing inventory %s: %w", ic.Path, err)
	}

	mergeSnapshot(snap, &in)
	return nil
}

// mergeSnapshot appends entities from in that snap does not already hold.
// Identity is the integer id within each entity collection.
func mergeSnapshot(snap, in *model.Snapshot) {
	serverIDs := make(map[int]bool, len(snap.Servers))
	for _, s := range snap.Servers {
		serverIDs[s.ID] = true
	}
	for _, s := range in.Servers {
		if !serverIDs[s.ID] {
			snap.Servers = append(snap.Servers, s)
		}
	}

	serviceIDs := make(map[int]bool, len(snap.Services))
	for _, s := range snap.Services {
		serviceIDs[s.ID] = true
	}
	for _, s := range in.Services {
		if !serviceIDs[s.ID] {
			snap.Services = append(snap.Services, s)
		}
	}

	credIDs := make(map[int]bool, len(snap.Credentials))
	for _, c := range snap.Credentials {
		credIDs[c.ID] = true
	}
	for _, c := range in.Credentials {
		if !credIDs[c.ID] {
			snap.Credentials = append(snap.Credentials, c)
		}
	}

	domainIDs := make(map[int]bool, len(snap.Domains))
	for _, d := range snap.Domains {
		domainIDs[d.ID] = true
	}
	for _, d := range in.Domains {
		if !domainIDs[d.ID] {
			snap.Domains = append(snap.Domains, d)
		}
	}
}
