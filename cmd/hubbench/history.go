package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hubbench/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved benchmark runs",
	Long: `Lists saved history files, newest last. When a database index is
configured (db.backend), the indexed run records are shown instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backend := viper.GetString("db.backend"); backend != "" {
			return historyFromDB(cmd, backend)
		}

		fs := store.NewFileStore(viper.GetString("output"))
		files, err := fs.ListHistory()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved runs found.")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(f))
		}
		return nil
	},
}

func historyFromDB(cmd *cobra.Command, backend string) error {
	idx, err := newDBStoreFunc(backend, viper.GetString("db.path"), viper.GetString("db.dsn"))
	if err != nil {
		return err
	}
	defer idx.Close()

	runs, err := idx.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tTARGETS\tFAILED\tHISTORY")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.TargetCount,
			run.FailedCount,
			filepath.Base(run.HistoryPath),
		)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum run records to list from the database index")
}
