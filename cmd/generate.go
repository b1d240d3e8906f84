package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acourtel/stackgraph/internal/collector"
	"github.com/acourtel/stackgraph/internal/config"
	"github.com/acourtel/stackgraph/internal/graph"
	"github.com/acourtel/stackgraph/internal/model"
	"github.com/acourtel/stackgraph/internal/render"
	"github.com/acourtel/stackgraph/internal/ui"
)

var (
	outputFile    string
	inventoryPath string
	composeFiles  []string
	composeDirs   []string
	layoutName    string
	formatName    string
	autoRender    bool
	renderFormat  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the dependency graph and write it to a file",
	Long: `Collect the inventory snapshot from the configured sources, build the
dependency graph, and write it as JSON for the rendering host or as a D2
diagram.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path")
	generateCmd.Flags().StringVar(&inventoryPath, "inventory", "", "path to an inventory YAML file")
	generateCmd.Flags().StringSliceVar(&composeFiles, "compose-file", nil, "compose files (format: path:server)")
	generateCmd.Flags().StringSliceVar(&composeDirs, "compose-scan-dir", nil, "directories to scan for compose files (format: path:server)")
	generateCmd.Flags().StringVar(&layoutName, "layout", "", "graph layout: grouped, flat")
	generateCmd.Flags().StringVar(&formatName, "format", "", "output format: json, d2")
	generateCmd.Flags().BoolVar(&autoRender, "render", false, "auto-render D2 output to SVG/PNG (requires d2)")
	generateCmd.Flags().StringVar(&renderFormat, "render-format", "", "image format for --render: svg, png (default: svg)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'stackgraph init' to create a config file"))
		return err
	}

	applyFlagOverrides(cfg)

	fmt.Println(ui.Bold("Collecting inventory snapshot..."))

	snap, results, err := collector.Collect(cfg)

	// Print collector results
	for _, r := range results {
		if r.Skipped {
			ui.CollectorSkipped(r.Name)
		} else if r.Err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError(r.Name+" failed", r.Err.Error(), ""))
		} else {
			ui.CollectorDone(r.Name, r.Detail)
		}
	}

	if err != nil {
		return err
	}

	g := graph.BuilderFor(cfg.Layout).Build(snap)

	content, err := render.For(cfg.Format).Render(g)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to render graph", err.Error(), ""))
		return err
	}

	output := cfg.Output
	if output == "" {
		output = "stackgraph." + cfg.Format
	}

	if err := os.WriteFile(output, []byte(content), 0644); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}

	ui.Success(fmt.Sprintf("Generated %s (%d servers, %d services, %d nodes, %d edges)",
		output, len(snap.Servers), countServices(snap), len(g.Nodes), len(g.Edges)))

	// Auto-render if requested (D2 output only)
	if cfg.Format == "d2" && cfg.Render.AutoRender {
		if err := autoRenderD2(output, cfg.Render.Format); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Auto-render failed", err.Error(), "install d2: https://d2lang.com/tour/install"))
		}
	}

	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if outputFile != "" {
		cfg.Output = outputFile
	}
	if inventoryPath != "" {
		cfg.Sources.Inventory.Path = inventoryPath
		ensureRawSource(cfg, "inventory", map[string]any{"path": inventoryPath})
	}
	for _, f := range composeFiles {
		parts := splitColonPair(f)
		cfg.Sources.Compose.Files = append(cfg.Sources.Compose.Files, config.ComposeFile{
			Path:   parts[0],
			Server: parts[1],
		})
		appendRawComposeEntry(cfg, "files", parts)
	}
	for _, dir := range composeDirs {
		parts := splitColonPair(dir)
		cfg.Sources.Compose.ScanDirs = append(cfg.Sources.Compose.ScanDirs, config.ScanDir{
			Path:   parts[0],
			Server: parts[1],
		})
		appendRawComposeEntry(cfg, "scan_dirs", parts)
	}
	if layoutName != "" {
		cfg.Layout = layoutName
	}
	if formatName != "" {
		cfg.Format = formatName
	}
	if autoRender {
		cfg.Render.AutoRender = true
	}
	if renderFormat != "" {
		cfg.Render.Format = renderFormat
	}
}

// ensureRawSource mirrors a flag override into RawSources so the
// registry-based orchestrator sees it too.
func ensureRawSource(cfg *config.Config, key string, section map[string]any) {
	if cfg.RawSources == nil {
		cfg.RawSources = map[string]any{}
	}
	cfg.RawSources[key] = section
}

func appendRawComposeEntry(cfg *config.Config, listKey string, parts [2]string) {
	if cfg.RawSources == nil {
		cfg.RawSources = map[string]any{}
	}
	section, _ := cfg.RawSources["compose"].(map[string]any)
	if section == nil {
		section = map[string]any{}
		cfg.RawSources["compose"] = section
	}
	list, _ := section[listKey].([]any)
	section[listKey] = append(list, map[string]any{"path": parts[0], "server": parts[1]})
}

func splitColonPair(s string) [2]string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return [2]string{s[:i], s[i+1:]}
	}
	return [2]string{s, ""}
}

func countServices(snap *model.Snapshot) int {
	return len(snap.Services)
}

func autoRenderD2(d2File, format string) error {
	if format == "" {
		format = "svg"
	}

	// Check if d2 is available
	d2Path, err := findExecutable("d2")
	if err != nil {
		return fmt.Errorf("d2 not found in PATH, install it from https://d2lang.com/tour/install")
	}

	ext := "." + format
	outFile := strings.TrimSuffix(d2File, ".d2") + ext

	c := execCommand(d2Path, d2File, outFile)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return fmt.Errorf("d2 render failed: %w", err)
	}

	ui.Success(fmt.Sprintf("Rendered %s", outFile))
	return nil
}
