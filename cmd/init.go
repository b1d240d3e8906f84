package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acourtel/stackgraph/internal/ui"
	"github.com/acourtel/stackgraph/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a stackgraph.yml config file interactively",
	Long: `Scan the working directory for snapshot sources (inventory files,
Docker Compose) and generate a config file through an interactive wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "stackgraph.yml"

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Detect environment
	fmt.Println(ui.Bold("Scanning working directory..."))
	detection := wizard.Detect(nil)

	// Run wizard
	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	// Generate config
	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	// Write config file
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("stackgraph generate"))
	fmt.Printf("           %s\n", ui.Hint("or edit stackgraph.yml to fine-tune your config"))

	return nil
}
