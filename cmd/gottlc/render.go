package main

import (
	"context"
	"fmt"
	"os"

	"github.com/codingersid/gottl/engine"
	"github.com/codingersid/gottl/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var renderCmd = &cobra.Command{
	Use:   "render <template-file>",
	Short: "Compile and render a single template file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("class", "c", "", "class name to render (default: the sole renderable class)")
	viper.BindPFlag("class", renderCmd.Flags().Lookup("class"))
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := readFile(path)
	if err != nil {
		return err
	}

	e := engine.New(
		engine.WithNamespace(viper.GetString("namespace")),
		engine.WithDebug(viper.GetBool("debug")),
		engine.WithLoader(loader.NewFileSystemLoader(".")),
	)
	if err := e.AddTemplateItem(path, content); err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}

	out, err := e.Render(context.Background(), viper.GetString("class"), nil)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	fmt.Print(out)
	return nil
}

func readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), nil
}
