package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hubbench/internal/bridge"
	"hubbench/internal/target"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available benchmark targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := newRegistryFunc(
			bridge.NewClient(viper.GetString("bridge.command")),
			viper.GetString("bridge.dir"),
			target.DefaultConfig(),
		)
		for _, id := range reg.IDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
