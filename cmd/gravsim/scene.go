package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/gravsim/input"
)

func newSceneCmd(rf *rootFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Write a preset or loaded scene to a TOML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := rf.loadScene()
			if err != nil {
				return err
			}
			if err := sc.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bodies to %s\n", len(sc.Bodies), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List action names accepted in keymap files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range input.ActionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
