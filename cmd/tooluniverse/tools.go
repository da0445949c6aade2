package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tool catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tools in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			for _, def := range registry.List() {
				if def.Description != "" {
					fmt.Printf("%s  %s\n", bold(def.Name), gray(def.Description))
				} else {
					fmt.Println(bold(def.Name))
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show one tool declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			def, ok := registry.GetToolByName(args[0])
			if !ok {
				return fmt.Errorf("tool not found: %s", args[0])
			}
			data, err := yaml.Marshal(def)
			if err != nil {
				return fmt.Errorf("encode tool: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	})

	return cmd
}
