package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dikesim/internal/config"
	"dikesim/internal/export"
	"dikesim/internal/metrics"
	"dikesim/internal/sim"
	"dikesim/internal/store"
	"dikesim/internal/tui"
	"dikesim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	maxKyr     float64
	dt         float64
	tracers    int
	verbose    bool
	saveRun    bool
	jsonOut    bool
	svgPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dikesim",
		Short: "thermal evolution of a repeatedly intruded crustal section",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dikesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed override (0 keeps config)")
	rootCmd.PersistentFlags().Float64Var(&maxKyr, "max-kyr", 0, "run length override, kyr")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", 0, "timestep override, seconds (0 derives from stability)")
	rootCmd.PersistentFlags().IntVar(&tracers, "tracers", -1, "tracers per dike override")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "per-step debug logging")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "archive the run under the data directory")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "stream the full result as JSON to stdout")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final field as an SVG image")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal view",
		RunE:  runLive,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export an archived run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			names := make([]string, 0, len(config.Presets))
			for name := range config.Presets {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves preset/file/flag overrides into one config.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if seed != 0 {
		cfg.Run.Seed = seed
	}
	if maxKyr > 0 {
		cfg.Run.MaxKyr = maxKyr
	}
	if dt > 0 {
		cfg.Run.Dt = dt
	}
	if tracers >= 0 {
		cfg.Intrusion.TracersPerDike = tracers
	}
	return cfg, nil
}

func buildDriver(cfg *config.Config, log *logrus.Logger) (*sim.Driver, error) {
	opts, err := cfg.BuildOptions()
	if err != nil {
		return nil, err
	}
	opts.Log = log

	d, err := sim.NewDriver(opts)
	if err != nil {
		return nil, err
	}
	d.AddMetric(metrics.NewThermalEnergy(opts.Grid))
	d.AddMetric(metrics.NewMeltVolume(opts.Grid))
	d.AddMetric(metrics.NewMaxTemperature())
	return d, nil
}

// meanHistory samples the domain-mean temperature for the summary plot.
type meanHistory struct {
	driver *sim.Driver
	every  int
	values []float64
}

func (h *meanHistory) OnStep(rec sim.StepRecord) {
	if h.every < 1 || rec.Step%h.every != 0 {
		return
	}
	h.values = append(h.values, viz.MeanTemperature(h.driver.Snapshot()))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if jsonOut {
		// Keep stdout clean for the JSON payload.
		log.SetOutput(os.Stderr)
	}

	d, err := buildDriver(cfg, log)
	if err != nil {
		return err
	}

	history := &meanHistory{driver: d, every: d.PlannedSteps() / 160}
	if history.every < 1 {
		history.every = 1
	}
	d.AddObserver(history)

	result, err := d.Run(context.Background())
	if err != nil {
		return err
	}

	if jsonOut {
		return store.ExportJSONTo(os.Stdout, cfg.Run.Seed, result)
	}

	printSummary(result)

	if len(history.values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(history.values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("domain mean temperature over run"),
		))
	}

	fmt.Println()
	fmt.Print(viz.Heatmap(result.Final, 72, 28, result.Tracers))

	if svgPath != "" {
		if err := export.WriteSVG(svgPath, result.Final, result.Tracers, 4); err != nil {
			return err
		}
	}

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Run.Seed, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved as %s\n", runID)
	}
	return nil
}

func printSummary(result *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.Steps)
	fmt.Fprintf(w, "elapsed\t%.3f kyr\n", result.ElapsedKyr)
	fmt.Fprintf(w, "intrusions\t%d\n", result.Intrusions)
	fmt.Fprintf(w, "injected volume\t%.4g m3\n", result.InjectedVolume)
	fmt.Fprintf(w, "injection rate\t%.4g m3/yr\n", result.InjectionRate)
	fmt.Fprintf(w, "tracers\t%d\n", result.TracerCount)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, result.Metrics[name])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := buildDriver(cfg, nil)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(d), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tKYR\tDIKES\tVOLUME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\t%.4g\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Seed,
			r.ElapsedKyr, r.Intrusions, r.InjectedVolume)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	temperature, err := st.LoadField(args[0], "temperature")
	if err != nil {
		return err
	}
	phi, err := st.LoadField(args[0], "phi")
	if err != nil {
		return err
	}

	out := struct {
		store.RunMetadata
		Temperature []float64 `json:"temperature"`
		Phi         []float64 `json:"phi"`
	}{*meta, temperature, phi}

	return printJSON(out)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
