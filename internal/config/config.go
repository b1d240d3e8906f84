package config

import "github.com/spf13/viper"

type Config struct {
	Output     string       `mapstructure:"output"`
	Layout     string       `mapstructure:"layout"` // grouped, flat
	Format     string       `mapstructure:"format"` // json, d2
	Sources    Sources      `mapstructure:"sources"`
	Serve      ServeConfig  `mapstructure:"serve"`
	Render     RenderConfig `mapstructure:"render"`
	RawSources map[string]any
}

type Sources struct {
	Inventory InventorySource `mapstructure:"inventory"`
	Compose   ComposeSource   `mapstructure:"compose"`
}

type InventorySource struct {
	Path string `mapstructure:"path"`
}

type ComposeSource struct {
	Files    []ComposeFile `mapstructure:"files"`
	ScanDirs []ScanDir     `mapstructure:"scan_dirs"`
}

type ComposeFile struct {
	Path     string `mapstructure:"path"`
	Server   string `mapstructure:"server"`
	Template bool   `mapstructure:"template"`
}

type ScanDir struct {
	Path   string `mapstructure:"path"`
	Server string `mapstructure:"server"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

type RenderConfig struct {
	AutoRender bool   `mapstructure:"auto_render"`
	Format     string `mapstructure:"format"` // svg, png (for d2 output)
}

func Load() (*Config, error) {
	cfg := &Config{
		Output: "stackgraph.json",
		Layout: "grouped",
		Format: "json",
	}
	cfg.Serve.Addr = ":8080"
	cfg.Render.Format = "svg"

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Populate RawSources for the registry-based orchestrator
	cfg.RawSources = viper.GetStringMap("sources")

	return cfg, nil
}
