package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hubbench/internal/bridge"
	"hubbench/internal/db"
	"hubbench/internal/metrics"
	"hubbench/internal/notify"
	"hubbench/internal/result"
	"hubbench/internal/runner"
	"hubbench/internal/store"
	"hubbench/internal/target"
	"hubbench/internal/ui"
)

var (
	runTargets     []string
	runSave        bool
	runNotify      bool
	runMetricsAddr string
)

// Injection points for tests.
var (
	newRunnerFunc   = runner.New
	newRegistryFunc = target.NewRegistry
	newNotifierFunc = notify.FromEnv
	newDBStoreFunc  = db.NewStore
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run benchmark targets and save the results",
	Long: `Runs the selected benchmark targets sequentially. Every target is
attempted over the subprocess bridge first and falls back to its simulated
workload when the bridge cannot serve it, so a run always yields a result
per target.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringSliceVar(&runTargets, "targets", nil, "Comma-separated target ids (default: all)")
	runCmd.Flags().BoolVar(&runSave, "save", true, "Persist results under benchmarks/output")
	runCmd.Flags().BoolVar(&runNotify, "notify", false, "Post a completion message to Slack")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := target.Config{
		Iterations:       viper.GetInt("iterations"),
		WarmupIterations: viper.GetInt("warmup_iterations"),
	}
	client := bridge.NewClient(viper.GetString("bridge.command"))
	reg := newRegistryFunc(client, viper.GetString("bridge.dir"), cfg)

	targets := reg.All()
	if len(runTargets) > 0 {
		targets = reg.ByIDs(runTargets)
		if len(targets) == 0 {
			return fmt.Errorf("no targets match %q (known: %s)",
				strings.Join(runTargets, ","), strings.Join(reg.IDs(), ", "))
		}
	}

	m := metrics.New()
	addr := runMetricsAddr
	if addr == "" {
		addr = viper.GetString("metrics.addr")
	}
	if addr != "" {
		go func() {
			if err := m.Serve(addr); err != nil {
				slog.Warn("metrics listener stopped", "addr", addr, "error", err)
			}
		}()
	}

	r := newRunnerFunc()
	r.Observer = m.ObserveTarget
	results := r.Run(ctx, targets)

	for _, res := range results {
		if status, _ := res.Metrics.String("status"); status == "simulated" {
			m.BridgeFallbacks.Inc()
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderResults(results))

	if runSave {
		fs := store.NewFileStore(viper.GetString("output"))
		if err := fs.Save(results); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		m.RunsSaved.Inc()
		fmt.Fprintf(cmd.OutOrStdout(), "Results saved under %s\n", store.OutputDir)

		if backend := viper.GetString("db.backend"); backend != "" {
			if err := recordRun(backend, results, fs); err != nil {
				slog.Warn("failed to index run", "backend", backend, "error", err)
			}
		}
	}

	if runNotify || viper.GetBool("notifications.slack.enabled") {
		n := newNotifierFunc(viper.GetString("notifications.slack.channel"))
		if n == nil {
			slog.Warn("notifications requested but no Slack credentials configured")
		} else if err := n.Notify(ctx, notify.RunMessage(results)); err != nil {
			slog.Warn("failed to send notification", "error", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFooter(results))
	return nil
}

// recordRun appends the saved run to the optional database index.
func recordRun(backend string, results []result.Result, fs *store.FileStore) error {
	idx, err := newDBStoreFunc(backend, viper.GetString("db.path"), viper.GetString("db.dsn"))
	if err != nil {
		return err
	}
	defer idx.Close()

	failed := 0
	for _, res := range results {
		if !res.IsSuccess() {
			failed++
		}
	}
	historyPath := fs.LatestPath()
	if files, err := fs.ListHistory(); err == nil && len(files) > 0 {
		historyPath = files[len(files)-1]
	}
	return idx.RecordRun(db.RunRecord{
		StartedAt:   time.Now().UTC(),
		TargetCount: len(results),
		FailedCount: failed,
		HistoryPath: historyPath,
	})
}
