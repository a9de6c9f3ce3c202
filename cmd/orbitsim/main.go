package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/trace"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	seed        int64
	outPath     string
	mode        string
	configFile  string
	preset      string
	catalogPath string
	strictTrace bool
	noProgress  bool
	theme       string
	replayPath  string
	// plot and inspect
	bodyName  string
	refName   string
	stepIndex int
	width     int
	height    int
	// svg
	svgPath string
	svgSize int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "newtonian n-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "run store directory")

	runCmd := &cobra.Command{
		Use:   "run [bodies] [dt] [total]",
		Short: "run a simulation and write its trace",
		Args:  cobra.MaximumNArgs(3),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&outPath, "out", config.DefaultOutput, "trace output path")
	runCmd.Flags().BoolVar(&strictTrace, "strict-trace", false, "fail when the trace file cannot be opened")
	runCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	watchCmd := &cobra.Command{
		Use:   "watch [bodies] [dt] [total]",
		Short: "run a simulation with live visualization, or replay a trace",
		Args:  cobra.MaximumNArgs(3),
		RunE:  runWatch,
	}
	addRunFlags(watchCmd)
	watchCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	watchCmd.Flags().StringVar(&replayPath, "trace", "", "replay a trace file instead of simulating")

	plotCmd := &cobra.Command{
		Use:   "plot [trace]",
		Short: "plot the distance between two bodies over a trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotTrace,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "Earth", "body to track")
	plotCmd.Flags().StringVar(&refName, "ref", "Sun", "reference body")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height")

	inspectCmd := &cobra.Command{
		Use:   "inspect [trace]",
		Short: "show one frame of a trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectTrace,
	}
	inspectCmd.Flags().IntVar(&stepIndex, "step", -1, "step to show (-1 for the last)")
	inspectCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")

	svgCmd := &cobra.Command{
		Use:   "svg [trace]",
		Short: "draw the orbits in a trace as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgPath, "output", "o", "orbits.svg", "svg output path")
	svgCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, watchCmd, plotCmd, inspectCmd, svgCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "force evaluation mode (directed, symmetric)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "body catalog path (yaml)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulation dt = %g s, total time = %g s\n", cfg.Dt, cfg.TotalTime)

	u, err := buildUniverse(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized %d bodies (seed %d)\n", u.Len(), cfg.Seed)

	tw, err := trace.Create(cfg.Output)
	if err != nil {
		if cfg.StrictTrace {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; continuing without a trace\n", err)
	} else {
		fmt.Fprintf(out, "Created output TXT file: %s\n", cfg.Output)
	}

	s := sim.New(physics.NewEngineWithMode(cfg.EngineMode()))
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewMomentumDrift())
	s.AddMetric(metrics.NewEscapes(cfg.EscapeRadius))

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.TotalTime}

	if tw != nil {
		s.AddObserver(tw)
	}
	var bar *sim.ProgressBar
	if !noProgress {
		bar = sim.NewProgressBar(out, simCfg)
		s.AddObserver(bar)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintln(out, "Starting Simulation...")
	if bar != nil {
		bar.Start()
	}
	start := time.Now()

	result, runErr := s.Run(ctx, u, simCfg)
	if bar != nil && runErr == nil {
		bar.Finish()
	}

	if tw != nil {
		if err := tw.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close trace: %w", err)
		}
	}
	if runErr != nil {
		if bar != nil {
			fmt.Fprintln(out)
		}
		return runErr
	}

	fmt.Fprintln(out, "Simulation finished.")

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		TotalTime: cfg.TotalTime,
		Steps:     result.Steps,
		Mode:      cfg.EngineMode().String(),
		Metrics:   result.Metrics,
	}
	if tw != nil {
		meta.Trace = cfg.Output
	}

	runID, err := st.Save(meta, u)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\ncompleted in %v\n", time.Since(start))
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.Steps)
	printMetrics(out, result.Metrics)

	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6e\n", name, m[name])
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	m, err := newWatchModel(cmd, args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(viz.Model); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "stopped at step %d\n", fm.Steps())
	}
	return nil
}

// newWatchModel builds a replay model when --trace is set and a live one
// otherwise.
func newWatchModel(cmd *cobra.Command, args []string) (viz.Model, error) {
	if replayPath != "" {
		if len(args) > 0 {
			return viz.Model{}, errors.New("watch: positional arguments cannot be combined with --trace")
		}
		frames, err := trace.ReadFile(replayPath)
		if err != nil {
			return viz.Model{}, err
		}
		m, err := viz.NewReplayModel(frames, viz.WatchConfig{Theme: theme})
		if err != nil {
			return viz.Model{}, fmt.Errorf("%s: %w", replayPath, err)
		}
		return m, nil
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return viz.Model{}, err
	}

	u, err := buildUniverse(cfg)
	if err != nil {
		return viz.Model{}, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Initialized %d bodies (seed %d)\n", u.Len(), cfg.Seed)

	return viz.NewModel(physics.NewEngineWithMode(cfg.EngineMode()), u, viz.WatchConfig{
		Dt:       cfg.Dt,
		Duration: cfg.TotalTime,
		Theme:    theme,
	}), nil
}

func tracePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultOutput
}

func plotTrace(cmd *cobra.Command, args []string) error {
	path := tracePath(args)
	frames, err := trace.ReadFile(path)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames in %s", path)
	}

	graph, err := viz.DistancePlot(frames, bodyName, refName, width, height)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "trace: %s\n", path)
	fmt.Fprintf(out, "frames: %d\n\n", len(frames))
	fmt.Fprintln(out, graph)

	dist, times, err := viz.DistanceSeries(frames, bodyName, refName)
	if err != nil {
		return err
	}
	if len(times) > 1 {
		if period, ok := analysis.DominantPeriod(dist, times[1]-times[0]); ok {
			fmt.Fprintf(out, "\ndominant period: %.4g s (%.2f d)\n", period, period/86400)
		}
	}
	return nil
}

func inspectTrace(cmd *cobra.Command, args []string) error {
	path := tracePath(args)
	frames, err := trace.ReadFile(path)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames in %s", path)
	}

	idx := stepIndex
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return fmt.Errorf("step %d out of range (trace has %d frames)", idx, len(frames))
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.FrameTable(frames[idx], viz.ThemeByName(theme)))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	path := tracePath(args)
	frames, err := trace.ReadFile(path)
	if err != nil {
		return err
	}

	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.OrbitsSVG(f, frames, svgSize); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d frames)\n", svgPath, len(frames))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tDT\tTOTAL\tSTEPS\tMODE\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%gs\t%gs\t%d\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Dt,
			run.TotalTime,
			run.Steps,
			run.Mode,
			run.Seed,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("run %s not found in %s", args[0], dataDir)
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tTOTAL\tMODE")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%gs\t%gs\t%s\n", name, p.Bodies, p.Dt, p.TotalTime, p.Mode)
	}
	return w.Flush()
}
