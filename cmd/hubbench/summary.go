package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hubbench/internal/store"
	"hubbench/internal/ui"
)

var summaryRaw bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the most recently saved benchmark results",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := store.NewFileStore(viper.GetString("output"))
		results, err := fs.ReadLatest()
		if err != nil {
			return err
		}
		if results == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved results found. Run 'hubbench run' first.")
			return nil
		}

		md := store.GenerateMarkdown(results, "Connector Hub Benchmark Results")
		if summaryRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(md))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryRaw, "raw", false, "Print plain markdown instead of rendering it")
}
