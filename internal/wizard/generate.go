package wizard

import (
	"bytes"
	"text/template"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	// Sources to enable
	EnableInventory bool
	EnableCompose   bool

	// Inventory settings
	InventoryPath string

	// Compose settings
	ComposeScanDirs []ComposeScanEntry
	ComposeFiles    []ComposeFileEntry

	// Output settings
	Layout string
	Format string
}

// ComposeScanEntry is a directory + server for compose scanning.
type ComposeScanEntry struct {
	Path   string
	Server string
}

// ComposeFileEntry is a file + server for explicit compose files.
type ComposeFileEntry struct {
	Path     string
	Server   string
	Template bool
}

const configTemplate = `# stackgraph configuration
# Documentation: https://github.com/acourtel/stackgraph

output: stackgraph.{{ if eq .Format "d2" }}d2{{ else }}json{{ end }}
layout: {{ .Layout }}
format: {{ .Format }}

sources:
{{- if .EnableInventory }}
  inventory:
    path: {{ .InventoryPath }}
{{- end }}

{{- if .EnableCompose }}
  compose:
{{- if .ComposeFiles }}
    files:
{{- range .ComposeFiles }}
      - path: {{ .Path }}
        server: {{ .Server }}
{{- if .Template }}
        template: true
{{- end }}
{{- end }}
{{- end }}
{{- if .ComposeScanDirs }}
    scan_dirs:
{{- range .ComposeScanDirs }}
      - path: {{ .Path }}
        server: {{ .Server }}
{{- end }}
{{- end }}
{{- end }}

serve:
  addr: ":8080"
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	// Set defaults
	if answers.Layout == "" {
		answers.Layout = "grouped"
	}
	if answers.Format == "" {
		answers.Format = "json"
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}
