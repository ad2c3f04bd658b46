package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gottlc",
	Short: "gottlc compiles and renders T4-style text templates",
	Long: `gottlc compiles .gtpl template bundles to a Go plugin artifact
and renders them.

Configuration file locations (in order of precedence):
  1. --config flag
  2. gottl.yaml / .gottl.yaml in current directory
  3. ~/.config/gottl/config.yaml`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is gottl.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug codegen (//line pragmas)")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(renderCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		for _, name := range []string{"gottl.yaml", ".gottl.yaml"} {
			if _, err := os.Stat(name); err == nil {
				viper.SetConfigFile(name)
				break
			}
		}

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gottl"))
			viper.SetConfigName("config")
		}
	}

	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("GOTTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
