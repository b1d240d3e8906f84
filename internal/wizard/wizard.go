package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Layout: "grouped",
		Format: "json",
	}

	// Build detection summary
	var hints []string
	if detection.InventoryFile != "" {
		hints = append(hints, fmt.Sprintf("Inventory file found: %s", detection.InventoryFile))
	}
	if len(detection.ComposeFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Compose files found: %s", strings.Join(detection.ComposeFiles, ", ")))
	}

	// Pre-select detected sources
	var preSelected []string
	if detection.InventoryFile != "" {
		preSelected = append(preSelected, "inventory")
	}
	if len(detection.ComposeFiles) > 0 {
		preSelected = append(preSelected, "compose")
	}

	// Step 1: Source selection
	var selectedSources []string

	desc := "Select the data sources to build the dependency graph from."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	sourceForm := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which sources do you want to enable?").
				Description(desc).
				Options(
					huh.NewOption("Inventory File", "inventory").Selected(contains(preSelected, "inventory")),
					huh.NewOption("Docker Compose", "compose").Selected(contains(preSelected, "compose")),
				).
				Value(&selectedSources),
		),
	)

	if err := sourceForm.Run(); err != nil {
		return nil, err
	}

	answers.EnableInventory = contains(selectedSources, "inventory")
	answers.EnableCompose = contains(selectedSources, "compose")

	// Step 2: Source-specific config
	var groups []*huh.Group

	if answers.EnableInventory {
		defaultInv := detection.InventoryFile
		if defaultInv == "" {
			defaultInv = "./inventory.yml"
		}
		answers.InventoryPath = defaultInv

		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Inventory file path").
				Value(&answers.InventoryPath),
		))
	}

	if answers.EnableCompose {
		var composePath string
		var composeServer string
		if len(detection.ComposeFiles) > 0 {
			composePath = detection.ComposeFiles[0]
		}

		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Compose file or scan directory path").
				Description("Path to a compose file or directory to scan").
				Value(&composePath),
			huh.NewInput().
				Title("Server name for these services").
				Description("Which server runs these containers?").
				Value(&composeServer),
		))

		// We'll process these after the form runs
		defer func() {
			if composePath != "" && composeServer != "" {
				// Determine if it's a directory or file
				if strings.HasSuffix(composePath, ".yml") || strings.HasSuffix(composePath, ".yaml") || strings.HasSuffix(composePath, ".j2") {
					isTemplate := strings.HasSuffix(composePath, ".j2")
					answers.ComposeFiles = append(answers.ComposeFiles, ComposeFileEntry{
						Path: composePath, Server: composeServer, Template: isTemplate,
					})
				} else {
					answers.ComposeScanDirs = append(answers.ComposeScanDirs, ComposeScanEntry{
						Path: composePath, Server: composeServer,
					})
				}
			}
		}()
	}

	// Step 3: Output options
	groups = append(groups, huh.NewGroup(
		huh.NewSelect[string]().
			Title("Graph layout").
			Options(
				huh.NewOption("Grouped: services and resources nested in group nodes", "grouped"),
				huh.NewOption("Flat: every entity its own node", "flat"),
			).
			Value(&answers.Layout),
		huh.NewSelect[string]().
			Title("Output format").
			Options(
				huh.NewOption("JSON: for the interactive rendering host", "json"),
				huh.NewOption("D2: static diagram text", "d2"),
			).
			Value(&answers.Format),
	))

	if len(groups) > 0 {
		form := huh.NewForm(groups...)
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return answers, nil
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
