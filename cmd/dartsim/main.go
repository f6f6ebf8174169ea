package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/san-kum/dartsim/internal/analysis"
	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/config"
	"github.com/san-kum/dartsim/internal/export"
	"github.com/san-kum/dartsim/internal/metrics"
	"github.com/san-kum/dartsim/internal/optim"
	"github.com/san-kum/dartsim/internal/sim"
	"github.com/san-kum/dartsim/internal/storage"
	"github.com/san-kum/dartsim/internal/sweep"
	"github.com/san-kum/dartsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	nSims          int
	minDispersion  float64
	maxDispersion  float64
	dispersionStep float64
	resultsFile    string
	seed           int64
	workers        int
	live           bool
	noSave         bool
	redisAddr      string
	cacheTTL       time.Duration

	dispersion float64
	aimX       float64
	aimY       float64
	jsonOut    string
	showBoard  bool
	boardSVG   string
	boardPNG   string
	sampleSize int
	topN       int

	runID      string
	plotWidth  int
	plotHeight int

	spacing   float64
	radius    float64
	simulated int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dartsim",
		Short: "monte carlo dart throw simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dartsim", "data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate every aim point across a range of dispersions",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&nSims, "n-sims", config.DefaultNSims, "throws per configuration")
	sweepCmd.Flags().Float64Var(&minDispersion, "min-dispersion", config.DefaultMinDispersion, "smallest dispersion (mm)")
	sweepCmd.Flags().Float64Var(&maxDispersion, "max-dispersion", config.DefaultMaxDispersion, "largest dispersion (mm)")
	sweepCmd.Flags().Float64Var(&dispersionStep, "dispersion-step", config.DefaultDispersionStep, "dispersion increment (mm)")
	sweepCmd.Flags().StringVar(&resultsFile, "results-file", config.DefaultResultsFile, "CSV output path")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 draws a fresh one per configuration)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = one per CPU)")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().BoolVar(&live, "live", false, "show a live progress view")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")
	sweepCmd.Flags().StringVar(&redisAddr, "redis", "", "cache results in redis at this address (needs --seed)")
	sweepCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "lifetime of cached results")

	simulateCmd := &cobra.Command{
		Use:   "simulate [aim]",
		Short: "simulate throws at one aim point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&nSims, "n-sims", config.DefaultNSims, "number of throws")
	simulateCmd.Flags().Float64Var(&dispersion, "dispersion", 10, "dispersion (mm)")
	simulateCmd.Flags().Float64Var(&aimX, "x", 0, "aim x (mm), used when no aim name is given")
	simulateCmd.Flags().Float64Var(&aimY, "y", 0, "aim y (mm), used when no aim name is given")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 draws a fresh one)")
	simulateCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = one per CPU)")
	simulateCmd.Flags().IntVar(&topN, "top", 5, "number of segments to list")
	simulateCmd.Flags().StringVar(&jsonOut, "json", "", "write the result as JSON to this path (- for stdout)")
	simulateCmd.Flags().BoolVar(&showBoard, "board", false, "draw a landing scatter with ring outlines")
	simulateCmd.Flags().StringVar(&boardSVG, "board-svg", "", "save the landing scatter as SVG")
	simulateCmd.Flags().StringVar(&boardPNG, "board-png", "", "save a landing point scatter as PNG")
	simulateCmd.Flags().IntVar(&sampleSize, "sample", 2000, "landing points to draw (must be positive)")

	scoreCmd := &cobra.Command{
		Use:   "score [x] [y]",
		Short: "score a single landing point",
		Args:  cobra.ExactArgs(2),
		RunE:  runScore,
	}

	aimsCmd := &cobra.Command{
		Use:   "aims",
		Short: "list named aim points",
		Args:  cobra.NoArgs,
		RunE:  listAims,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [csv]",
		Short: "plot sweep results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotResults,
	}
	plotCmd.Flags().StringVar(&runID, "run", "", "plot a stored run instead of a file")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [csv] [out]",
		Short: "render sweep results as an image",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportPNG,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search the board for the best aim point at a dispersion",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().Float64Var(&dispersion, "dispersion", 10, "dispersion (mm)")
	optimizeCmd.Flags().Float64Var(&spacing, "spacing", 5, "grid spacing (mm)")
	optimizeCmd.Flags().Float64Var(&radius, "radius", board.DoubleOuterRadius, "search radius (mm)")
	optimizeCmd.Flags().IntVar(&simulated, "simulated", 0, "score candidates with this many simulated throws instead of integration")
	optimizeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for --simulated")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sweep presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default sweep configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "dartsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(sweepCmd, simulateCmd, scoreCmd, aimsCmd, plotCmd, exportPNGCmd, runsCmd, optimizeCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveSweepConfig layers preset, config file and explicitly set flags,
// later layers winning.
func resolveSweepConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("n-sims") {
		cfg.NSims = nSims
	}
	if flags.Changed("min-dispersion") {
		cfg.MinDispersion = minDispersion
	}
	if flags.Changed("max-dispersion") {
		cfg.MaxDispersion = maxDispersion
	}
	if flags.Changed("dispersion-step") {
		cfg.DispersionStep = dispersionStep
	}
	if flags.Changed("results-file") {
		cfg.ResultsFile = resultsFile
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, nil
}

// statusPrinter prints a line before and after each configuration.
type statusPrinter struct{}

func (statusPrinter) OnStart(step sweep.Step) {
	fmt.Println(viz.Simulating(step.NSims, step.Aim.Name, step.Dispersion))
}

func (statusPrinter) OnResult(_ sweep.Step, _ sweep.Row, result *sim.Result) {
	fmt.Println(viz.ResultLine(result))
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSweepConfig(cmd)
	if err != nil {
		return err
	}

	plan, err := sweep.PlanFromConfig(cfg)
	if err != nil {
		return err
	}

	if redisAddr != "" && cfg.Seed == 0 {
		return fmt.Errorf("--redis needs a fixed --seed; unseeded results cannot be reused")
	}

	simulator := sim.New(sim.Config{Seed: cfg.Seed, Workers: cfg.Workers})
	var s sweep.Simulator = simulator

	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()

		cache, err := storage.NewCache(&storage.CacheConfig{RedisClient: client, TTL: cacheTTL})
		if err != nil {
			return err
		}
		s = storage.NewCachedSimulator(simulator, cache, cfg.Seed)
	}

	rw, err := storage.CreateResultFile(cfg.ResultsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sweep.NewRunner(s)
	start := time.Now()

	var rows []sweep.Row
	if live {
		rows, err = runLiveSweep(ctx, runner, plan, rw)
	} else {
		runner.AddObserver(statusPrinter{})
		rows, err = runner.Run(ctx, plan, rw)
	}
	closeErr := rw.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	elapsed := time.Since(start)

	fmt.Printf("\ncompleted %d configurations in %v\n", len(rows), elapsed.Round(time.Millisecond))
	fmt.Printf("results: %s\n", cfg.ResultsFile)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Preset:      preset,
		NSims:       cfg.NSims,
		Seed:        simulator.Seed(),
		Workers:     cfg.Workers,
		AimPoints:   cfg.AimPoints,
		Dispersions: cfg.Dispersions(),
		Elapsed:     elapsed.Seconds(),
		Rows:        rows,
	})
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", id)
	return nil
}

func runLiveSweep(ctx context.Context, runner *sweep.Runner, plan sweep.Plan, sinks ...sweep.Sink) ([]sweep.Row, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(viz.NewProgressModel(plan.Size(), cancel))
	runner.AddObserver(viz.ProgramObserver{Program: p})

	var rows []sweep.Row
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		rows, runErr = runner.Run(ctx, plan, sinks...)
		p.Send(viz.SweepDoneMsg{Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return rows, err
	}
	<-done
	return rows, runErr
}

func validateSample(n int) error {
	if n <= 0 {
		return fmt.Errorf("--sample must be positive, got %d", n)
	}
	return nil
}

func resolveAim(cmd *cobra.Command, args []string) (board.AimPoint, error) {
	if len(args) > 0 {
		return board.LookupAim(args[0])
	}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		return board.AimPoint{Name: fmt.Sprintf("(%g, %g)", aimX, aimY), Point: board.Point{X: aimX, Y: aimY}}, nil
	}
	return board.LookupAim(board.Bullseye)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	aim, err := resolveAim(cmd, args)
	if err != nil {
		return err
	}

	wantBoard := showBoard || boardSVG != "" || boardPNG != ""
	if wantBoard {
		if err := validateSample(sampleSize); err != nil {
			return err
		}
	}

	s := sim.New(sim.Config{Seed: seed, Workers: workers})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	toStdout := jsonOut == "-"
	if !toStdout {
		fmt.Println(viz.Simulating(nSims, aim.Name, dispersion))
	}

	start := time.Now()
	result, err := s.Simulate(ctx, nSims, dispersion, aim.Point)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	rates := metrics.Evaluate(result, metrics.Default(aim.Point)...)

	if jsonOut != "" {
		data := storage.NewExportData(aim.Name, result.Seed, result, rates)
		if toStdout {
			return storage.WriteJSON(os.Stdout, data)
		}
		if err := storage.ExportJSON(jsonOut, data); err != nil {
			return err
		}
	}

	fmt.Println(viz.ResultLine(result))
	fmt.Printf("completed in %v (seed %d)\n\n", elapsed.Round(time.Millisecond), result.Seed)

	lines := make([]string, 0, len(rates))
	for _, name := range sortedKeys(rates) {
		lines = append(lines, viz.Metric(name, rates[name]))
	}
	fmt.Println(viz.Panel("hit rates", lines))

	if topN > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEGMENT\tVALUE\tHITS\tFREQ")
		for _, sc := range result.TopSegments(topN) {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\n", sc.Segment, sc.Segment.Value(), sc.Count, result.Frequency(sc.Segment))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if !wantBoard {
		return nil
	}

	points, err := s.WithSeed(result.Seed).Sample(min(sampleSize, nSims), dispersion, aim.Point)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(60, 30)
	viz.RenderBoard(canvas, points)
	if showBoard {
		fmt.Println()
		fmt.Print(canvas.String())
	}
	if boardSVG != "" {
		if err := os.WriteFile(boardSVG, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("board saved to %s\n", boardSVG)
	}
	if boardPNG != "" {
		if err := export.WriteBoardPNG(points, boardPNG); err != nil {
			return err
		}
		fmt.Printf("scatter saved to %s\n", boardPNG)
	}
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	p := board.Point{X: x, Y: y}
	seg := board.SegmentAt(p)
	fmt.Printf("%s  radius %.2fmm  bearing %.2f°\n", p, p.Radius(), p.Bearing())
	fmt.Printf("%s %s\n", seg, viz.MetricValue.Render(strconv.Itoa(seg.Value())))
	return nil
}

func listAims(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tX\tY\tSEGMENT")
	for _, aim := range board.AimPoints() {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", aim.Name, aim.Point.X, aim.Point.Y, board.SegmentAt(aim.Point))
	}
	return w.Flush()
}

func loadRows(args []string) ([]sweep.Row, error) {
	if runID != "" {
		return storage.New(dataDir).LoadRows(runID)
	}
	path := config.DefaultResultsFile
	if len(args) > 0 {
		path = args[0]
	}
	return storage.ReadResultsFile(path)
}

func plotResults(cmd *cobra.Command, args []string) error {
	rows, err := loadRows(args)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotRows(rows, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("best aim point per dispersion"))
	fmt.Print(viz.Table(viz.BestAims(rows)))
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	rows, err := storage.ReadResultsFile(args[0])
	if err != nil {
		return err
	}

	out := "results.png"
	if len(args) > 1 {
		out = args[1]
	}
	if err := export.WritePNG(rows, out); err != nil {
		return err
	}
	fmt.Printf("chart saved to %s\n", out)
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tN_SIMS\tSEED\tAIMS\tDISPERSIONS\tELAPSED")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.1fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			p,
			run.NSims,
			run.Seed,
			len(run.AimPoints),
			len(run.Dispersions),
			run.Elapsed,
		)
	}

	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := analysis.Options{}
	score := optim.AnalyticScorer(opts)
	method := "numerical integration"
	if simulated > 0 {
		score = optim.SimulatedScorer(sim.New(sim.Config{Seed: seed}), simulated)
		method = fmt.Sprintf("%d simulated throws per candidate", simulated)
	}

	fmt.Printf("searching %gmm grid within %gmm at dispersion %gmm (%s)\n", spacing, radius, dispersion, method)

	best, value, err := optim.BestAim(ctx, optim.AimSearch{
		Dispersion: dispersion,
		Spacing:    spacing,
		Radius:     radius,
	}, score)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest aim %s in %s: expected score %s\n\n",
		best.Point, board.SegmentAt(best.Point), viz.MetricValue.Render(fmt.Sprintf("%.3f", value)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AIM\tEXPECTED\tSTD DEV")
	for _, aim := range board.AimPoints() {
		mean, sd := analysis.ScoreMoments(aim.Point, dispersion, opts)
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\n", aim.Name, mean, sd)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN_SIMS\tDISPERSIONS\tAIMS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g..%g step %g\t%d\n",
			name, p.NSims, p.MinDispersion, p.MaxDispersion, p.DispersionStep, len(p.AimPoints))
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
