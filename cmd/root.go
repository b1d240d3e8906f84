package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stackgraph",
	Short: "Build resource dependency graphs from an infrastructure inventory",
	Long: `stackgraph turns an inventory of servers, services, credentials and
domains into a laid-out dependency graph: deduplicated nodes, styled edges,
and click/hover highlighting for an interactive rendering host.

Output is JSON for the host, or D2 text for static diagrams.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: stackgraph.yml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("stackgraph")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("STACKGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}
