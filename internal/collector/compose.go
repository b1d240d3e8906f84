package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/acourtel/stackgraph/internal/config"
	"github.com/acourtel/stackgraph/internal/model"
	"github.com/acourtel/stackgraph/internal/util"
	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	yamlv3 "gopkg.in/yaml.v3"
)

func init() {
	Register(func() RegisteredCollector { return &ComposeCollector{} })
}

// ComposeCollector maps docker-compose projects onto the snapshot: each
// compose service becomes a service on the configured server, depends_on
// entries become internal dependencies, external_links become external
// dependencies.
type ComposeCollector struct {
	Files    []config.ComposeFile
	ScanDirs []config.ScanDir

	depSeq int
}

func (cc *ComposeCollector) Metadata() CollectorMetadata {
	return CollectorMetadata{
		Name:        "compose",
		DisplayName: "Docker Compose",
		Description: "Parses docker-compose files and Jinja2 templates for services",
		ConfigKey:   "compose",
		DetectHint:  "docker-compose.yml",
	}
}

func (cc *ComposeCollector) Enabled(sources map[string]any) bool {
	section, ok := sources["compose"].(map[string]any)
	if !ok {
		return false
	}
	// Enabled if files or scan_dirs are configured
	if files, ok := section["files"]; ok {
		if list, ok := files.([]any); ok && len(list) > 0 {
			return true
		}
	}
	if dirs, ok := section["scan_dirs"]; ok {
		if list, ok := dirs.([]any); ok && len(list) > 0 {
			return true
		}
	}
	return false
}

func (cc *ComposeCollector) Configure(section map[string]any) error {
	if section == nil {
		return nil
	}
	// Parse files
	if filesRaw, ok := section["files"]; ok {
		if list, ok := filesRaw.([]any); ok {
			for _, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				cf := config.ComposeFile{}
				if v, ok := m["path"].(string); ok {
					cf.Path = v
				}
				if v, ok := m["server"].(string); ok {
					cf.Server = v
				}
				if v, ok := m["template"].(bool); ok {
					cf.Template = v
				}
				cc.Files = append(cc.Files, cf)
			}
		}
	}
	// Parse scan_dirs
	if dirsRaw, ok := section["scan_dirs"]; ok {
		if list, ok := dirsRaw.([]any); ok {
			for _, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				sd := config.ScanDir{}
				if v, ok := m["path"].(string); ok {
					sd.Path = v
				}
				if v, ok := m["server"].(string); ok {
					sd.Server = v
				}
				cc.ScanDirs = append(cc.ScanDirs, sd)
			}
		}
	}
	return nil
}

func (cc *ComposeCollector) Validate() []ValidationError {
	var errs []ValidationError
	for i, f := range cc.Files {
		path := util.ExpandPath(f.Path)
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("sources.compose.files[%d]", i),
				Message:    fmt.Sprintf("file not found: %s", f.Path),
				Suggestion: "check the path or remove this entry",
			})
		}
	}
	for i, d := range cc.ScanDirs {
		path := util.ExpandPath(d.Path)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("sources.compose.scan_dirs[%d]", i),
				Message:    fmt.Sprintf("directory not found: %s", d.Path),
				Suggestion: "check the path or remove this entry",
			})
		}
	}
	return errs
}

func (cc *ComposeCollector) Collect(snap *model.Snapshot) error {
	// Process explicit files
	for _, f := range cc.Files {
		path := util.ExpandPath(f.Path)
		if err := cc.parseComposeFile(snap, path, f.Server, f.Template); err != nil {
			return fmt.Errorf("parsing compose file %s: %w", f.Path, err)
		}
	}

	// Scan directories
	for _, dir := range cc.ScanDirs {
		path := util.ExpandPath(dir.Path)
		if err := cc.scanDirectory(snap, path, dir.Server); err != nil {
			return fmt.Errorf("scanning directory %s: %w", dir.Path, err)
		}
	}

	return nil
}

func (cc *ComposeCollector) scanDirectory(snap *model.Snapshot, dir, server string) error {
	patterns := []string{
		"docker-compose.yml",
		"docker-compose.yaml",
		"compose.yml",
		"compose.yaml",
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			// Skip hidden directories and common non-relevant dirs
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		for _, pattern := range patterns {
			if info.Name() == pattern {
				if err := cc.parseComposeFile(snap, path, server, false); err != nil {
					// Log but don't fail on individual parse errors
					fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", path, err)
				}
				return nil
			}
		}
		return nil
	})
}

func (cc *ComposeCollector) parseComposeFile(snap *model.Snapshot, path, server string, isTemplate bool) error {
	if isTemplate {
		return cc.parseTemplate(snap, path, server)
	}
	return cc.parseStandard(snap, path, server)
}

func (cc *ComposeCollector) parseStandard(snap *model.Snapshot, path, server string) error {
	ctx := context.Background()

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return fmt.Errorf("project options: %w", err)
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		// Fallback: try manual YAML parse
		return cc.parseFallback(snap, path, server)
	}

	return cc.projectToServices(snap, project, server)
}

func (cc *ComposeCollector) parseTemplate(snap *model.Snapshot, path, server string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Strip Jinja2 expressions
	cleaned := util.StripJinja2(string(data))

	// Write to temp file and parse
	tmpFile, err := os.CreateTemp("", "compose-*.yml")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(cleaned); err != nil {
		tmpFile.Close()
		return err
	}
	tmpFile.Close()

	return cc.parseFallback(snap, tmpFile.Name(), server)
}

// composeUnit is one compose service before dependency wiring.
type composeUnit struct {
	name          string
	dependsOn     []string
	externalLinks []string
}

// parseFallback uses raw YAML parsing when compose-go fails.
func (cc *ComposeCollector) parseFallback(snap *model.Snapshot, path, server string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	content := string(data)
	// Strip Jinja2 if present
	if strings.Contains(content, "{{") {
		content = util.StripJinja2(content)
	}

	var raw map[string]any
	if err := yamlv3.Unmarshal([]byte(content), &raw); err != nil {
		return fmt.Errorf("yaml parse: %w", err)
	}

	servicesRaw, ok := raw["services"]
	if !ok {
		return nil
	}
	servicesMap, ok := servicesRaw.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(servicesMap))
	for name := range servicesMap {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]composeUnit, 0, len(names))
	for _, name := range names {
		svcMap, ok := servicesMap[name].(map[string]any)
		if !ok {
			continue
		}
		unit := composeUnit{name: name}
		if depsRaw, ok := svcMap["depends_on"]; ok {
			unit.dependsOn = parseStringList(depsRaw)
		}
		if linksRaw, ok := svcMap["external_links"]; ok {
			unit.externalLinks = parseStringList(linksRaw)
		}
		units = append(units, unit)
	}

	cc.unitsToSnapshot(snap, units, server)
	return nil
}

func (cc *ComposeCollector) projectToServices(snap *model.Snapshot, project *composetypes.Project, server string) error {
	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]composeUnit, 0, len(names))
	for _, name := range names {
		svc := project.Services[name]
		unit := composeUnit{name: svc.Name, externalLinks: svc.ExternalLinks}
		depNames := make([]string, 0, len(svc.DependsOn))
		for depName := range svc.DependsOn {
			depNames = append(depNames, depName)
		}
		sort.Strings(depNames)
		unit.dependsOn = depNames
		units = append(units, unit)
	}

	cc.unitsToSnapshot(snap, units, server)
	return nil
}

// unitsToSnapshot registers the compose services on their server, then
// wires dependencies in a second pass so forward references resolve.
func (cc *ComposeCollector) unitsToSnapshot(snap *model.Snapshot, units []composeUnit, server string) {
	srv := ensureServer(snap, server)
	if srv == nil {
		return
	}

	byName := map[string]int{}
	for _, unit := range units {
		svc := ensureService(snap, srv.ID, unit.name)
		byName[unit.name] = svc.ID
	}

	for _, unit := range units {
		svc := snap.ServiceByID(byName[unit.name])
		for _, depName := range unit.dependsOn {
			targetID, ok := byName[depName]
			if !ok {
				continue
			}
			cc.depSeq++
			svc.Dependencies = append(svc.Dependencies, model.Dependency{
				ID:                  cc.depSeq,
				DependencyServiceID: targetID,
			})
		}
		for _, link := range unit.externalLinks {
			// external_links entries are "name" or "name:alias"
			name := link
			if idx := strings.Index(link, ":"); idx > 0 {
				name = link[:idx]
			}
			if name == "" {
				continue
			}
			cc.depSeq++
			svc.Dependencies = append(svc.Dependencies, model.Dependency{
				ID:                  cc.depSeq,
				ExternalServiceName: name,
				ExternalType:        "container",
			})
		}
	}
}

func ensureServer(snap *model.Snapshot, name string) *model.Server {
	if name == "" {
		return nil
	}
	for i := range snap.Servers {
		if snap.Servers[i].Name == name {
			return &snap.Servers[i]
		}
	}
	snap.Servers = append(snap.Servers, model.Server{ID: snap.NextServerID(), Name: name})
	return &snap.Servers[len(snap.Servers)-1]
}

func ensureService(snap *model.Snapshot, serverID int, name string) *model.Service {
	for i := range snap.Services {
		if snap.Services[i].Name == name && snap.Services[i].RunsOn(serverID) {
			return &snap.Services[i]
		}
	}
	snap.Services = append(snap.Services, model.Service{
		ID:        snap.NextServiceID(),
		Name:      name,
		ServerIDs: []int{serverID},
	})
	return &snap.Services[len(snap.Services)-1]
}

func parseStringList(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
	case map[string]any:
		for name := range v {
			out = append(out, name)
		}
		sort.Strings(out)
	}
	return out
}
