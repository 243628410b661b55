package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/blobline/internal/analysis"
	"github.com/san-kum/blobline/internal/automation"
	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/config"
	"github.com/san-kum/blobline/internal/experiment"
	"github.com/san-kum/blobline/internal/export"
	"github.com/san-kum/blobline/internal/metrics"
	"github.com/san-kum/blobline/internal/optim"
	"github.com/san-kum/blobline/internal/sequencer"
	"github.com/san-kum/blobline/internal/sink"
	"github.com/san-kum/blobline/internal/storage"
	"github.com/san-kum/blobline/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	numBlobs   int
	spaceWidth int
	frameCount int
	minSpeed   float64
	maxSpeed   float64
	minPos     float64
	maxPos     float64
	minWidth   int
	maxWidth   int
	background int
	colorVar   int
	speedVar   float64
	accVar     float64
	noise      int
	integral   bool
	// Output
	outPath     string
	videoOut    string
	format      string
	frameHeight int
	fps         int
	scale       int
	noSave      bool
	metricNames []string
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Tune
	tuneMetric string
	tuneTarget float64
)

// main registers the commands and flags and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "blobline",
		Short:        "drifting blob scanline generator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".blobline", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "generate a raster and store the run",
		Args:  cobra.NoArgs,
		RunE:  renderRaster,
	}
	addGenerationFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the raster to this png")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	renderCmd.Flags().StringSliceVar(&metricNames, "metric", nil, "extra metrics to record")

	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "stream frames to a gif or a png directory",
		Args:  cobra.NoArgs,
		RunE:  renderVideo,
	}
	addGenerationFlags(videoCmd)
	videoCmd.Flags().StringVarP(&videoOut, "out", "o", "blobline.gif", "output file or directory")
	videoCmd.Flags().StringVar(&format, "format", "gif", "video format (gif, frames); gif buffers every frame until the end, use frames for long runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "generate rows live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addGenerationFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot mean luminance per frame",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "luminance spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run pixels to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run pixels to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addGenerationFlags(configCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run and store every run in a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and compare metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addGenerationFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "noise_amount", fmt.Sprintf("parameter to vary %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "to", 100, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of runs")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search a parameter for a target metric value",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addGenerationFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&sweepParam, "param", "noise_amount", "parameter to search")
	tuneCmd.Flags().Float64Var(&sweepMin, "from", 0, "first value")
	tuneCmd.Flags().Float64Var(&sweepMax, "to", 100, "last value")
	tuneCmd.Flags().IntVar(&sweepSteps, "steps", 11, "grid points")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric-name", "contrast", "metric to match")
	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 40, "target metric value")

	rootCmd.AddCommand(renderCmd, videoCmd, liveCmd, listCmd, showCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, configCmd, batchCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGenerationFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	f.IntVar(&numBlobs, "blobs", d.NumBlobs, "number of blobs")
	f.IntVar(&spaceWidth, "width", d.SpaceWidth, "row width in pixels")
	f.IntVar(&frameCount, "frames", d.FrameCount, "number of frames")
	f.Float64Var(&minSpeed, "min-speed", d.MinSpeed, "minimum blob speed")
	f.Float64Var(&maxSpeed, "max-speed", d.MaxSpeed, "maximum blob speed")
	f.Float64Var(&minPos, "min-pos", d.MinPos, "minimum start position")
	f.Float64Var(&maxPos, "max-pos", d.MaxPos, "maximum start position")
	f.IntVar(&minWidth, "min-blob-width", d.MinWidth, "minimum blob width")
	f.IntVar(&maxWidth, "max-blob-width", d.MaxWidth, "maximum blob width")
	f.IntVar(&background, "background", int(d.Background.R), "background gray level")
	f.IntVar(&colorVar, "color-var", d.ColorVar, "per-pixel color variation inside a blob")
	f.Float64Var(&speedVar, "speed-var", d.SpeedVar, "speed jitter fraction [0,1]")
	f.Float64Var(&accVar, "acc-var", d.AccVar, "velocity random walk bound")
	f.IntVar(&noise, "noise", d.NoiseAmount, "per-channel noise amount")
	f.BoolVar(&integral, "integral", d.Integral, "integer positions and speeds")
	f.IntVar(&frameHeight, "height", d.Output.Height, "video frame height")
	f.IntVar(&fps, "fps", d.Output.FPS, "video / live frame rate")
	f.IntVar(&scale, "scale", d.Output.Scale, "raster upscale factor")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("blobs") {
		cfg.NumBlobs = numBlobs
	}
	if f.Changed("width") {
		cfg.SpaceWidth = spaceWidth
	}
	if f.Changed("frames") {
		cfg.FrameCount = frameCount
	}
	if f.Changed("min-speed") {
		cfg.MinSpeed = minSpeed
	}
	if f.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if f.Changed("min-pos") {
		cfg.MinPos = minPos
	}
	if f.Changed("max-pos") {
		cfg.MaxPos = maxPos
	}
	if f.Changed("min-blob-width") {
		cfg.MinWidth = minWidth
	}
	if f.Changed("max-blob-width") {
		cfg.MaxWidth = maxWidth
	}
	if f.Changed("background") {
		cfg.Background = config.Background(blob.Gray(background))
	}
	if f.Changed("color-var") {
		cfg.ColorVar = colorVar
	}
	if f.Changed("speed-var") {
		cfg.SpeedVar = speedVar
	}
	if f.Changed("acc-var") {
		cfg.AccVar = accVar
	}
	if f.Changed("noise") {
		cfg.NoiseAmount = noise
	}
	if f.Changed("integral") {
		cfg.Integral = integral
	}
	if f.Changed("height") {
		cfg.Output.Height = frameHeight
	}
	if f.Changed("fps") {
		cfg.Output.FPS = fps
	}
	if f.Changed("scale") {
		cfg.Output.Scale = scale
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

func renderRaster(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	extra := make([]metrics.Metric, 0, len(metricNames))
	for _, name := range metricNames {
		m, err := registry.GetMetric(name)
		if err != nil {
			return err
		}
		extra = append(extra, m)
	}

	exp := experiment.New(*cfg)
	if err := exp.Setup(extra...); err != nil {
		return err
	}

	fmt.Printf("rendering %d frames of %d blobs (seed %d)...\n", cfg.FrameCount, cfg.NumBlobs, cfg.Seed)
	start := time.Now()

	result, err := exp.Run()
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))

	if outPath != "" {
		img := sink.Scale(sink.Raster(result.Rows), cfg.Output.Scale)
		if err := sink.SavePNG(outPath, img); err != nil {
			return err
		}
		fmt.Printf("raster: %s\n", outPath)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(preset, cfg, result.Rows, result.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	return nil
}

func renderVideo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(*cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	w, err := sink.Open(format, videoOut, cfg.Output.FPS)
	if err != nil {
		return err
	}

	fmt.Printf("streaming %d frames (%dx%d) to %s...\n", cfg.FrameCount, cfg.SpaceWidth, cfg.Output.Height, videoOut)
	start := time.Now()

	m, err := exp.Stream(w)
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Printf("completed in %v (%d frames)\n", time.Since(start), w.Frames())
	printMetrics(m)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	build := func(s int64) (*sequencer.Sequencer, error) {
		c := *cfg
		c.Seed = s
		exp := experiment.New(c)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		return exp.Sequencer(), nil
	}

	m, err := viz.NewModel(build, cfg.Seed, cfg.FrameCount, cfg.NoiseAmount, cfg.Output.FPS)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, m[name])
	}
	w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tWIDTH\tBLOBS\tNOISE\tSEED")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width,
			run.Config.NumBlobs,
			run.Config.NoiseAmount,
			run.Seed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("frames: %d x %d px\n", meta.Frames, meta.Width)
	fmt.Printf("raster: %s\n\n", st.RasterPath(meta.ID))
	fmt.Println("config:")
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(meta.Config); err != nil {
		return err
	}
	enc.Close()
	printMetrics(meta.Metrics)
	return nil
}

func loadSeries(runID string) (*storage.RunMetadata, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := st.LoadRaster(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}

	return meta, metrics.SeriesOf(rows), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(series))

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean luminance per frame"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("luminance spectrum: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (bins 1..n)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	period := analysis.DominantPeriod(series)
	if period == 0 {
		fmt.Println("no dominant period")
		return nil
	}
	fmt.Printf("dominant period: %.2f frames\n", period)
	if meta.Config.Output.FPS > 0 {
		fmt.Printf("at %d fps: %.3f s\n", meta.Config.Output.FPS, period/float64(meta.Config.Output.FPS))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadRaster(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}
	return export.WriteCSV(os.Stdout, rows)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRaster(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, export.NewData(meta.ID, meta.Seed, rows, meta.Metrics))
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	return automation.RunScenario(scenario, func(spec automation.RunSpec, cfg *config.Config, res *sequencer.Result) error {
		runID, err := st.Save(spec.Preset, cfg, res.Rows, res.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("  %s -> %s\n", spec.Name, runID)
		return nil
	})
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s from %g to %g (%d steps, seed %d)\n\n", sweepParam, sweepMin, sweepMax, sweepSteps, cfg.Seed)

	results, err := automation.RunSweep(&automation.ParameterSweep{
		Base:      *cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\t"+strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%g", r.ParamValue)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := optim.NewGridSearch([]string{sweepParam}, [][]float64{optim.Linspace(sweepMin, sweepMax, sweepSteps)})
	if err != nil {
		return err
	}

	fmt.Printf("searching %s for %s = %g (seed %d)...\n", sweepParam, tuneMetric, tuneTarget, cfg.Seed)
	start := time.Now()

	params, val, err := g.Search(*cfg, tuneMetric, tuneTarget)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best %s: %g\n", sweepParam, params[sweepParam])
	fmt.Printf("%s: %.4f\n", tuneMetric, val)
	return nil
}
