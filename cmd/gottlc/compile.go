package main

import (
	"context"
	"fmt"

	"github.com/codingersid/gottl/engine"
	"github.com/codingersid/gottl/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var compileCmd = &cobra.Command{
	Use:   "compile <template-file>...",
	Short: "Compile one or more template files into a Go plugin artifact",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "assembly name for a persisted artifact (default: in-memory only)")
	compileCmd.Flags().StringP("namespace", "n", "gottlgen", "generated package name")
	viper.BindPFlag("output", compileCmd.Flags().Lookup("output"))
	viper.BindPFlag("namespace", compileCmd.Flags().Lookup("namespace"))
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts := []engine.Option{
		engine.WithNamespace(viper.GetString("namespace")),
		engine.WithDebug(viper.GetBool("debug")),
		engine.WithLoader(loader.NewFileSystemLoader(".")),
	}
	if out := viper.GetString("output"); out != "" {
		opts = append(opts, engine.WithAssemblyName(out))
	}

	e := engine.New(opts...)
	for _, path := range args {
		content, err := readFile(path)
		if err != nil {
			return err
		}
		if err := e.AddTemplateItem(path, content); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	}

	if err := e.Compile(context.Background()); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	fmt.Printf("compiled %d template(s), status=%s\n", len(args), e.Status())
	return nil
}
