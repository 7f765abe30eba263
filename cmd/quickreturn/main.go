package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/quickreturn/internal/analysis"
	"github.com/san-kum/quickreturn/internal/config"
	"github.com/san-kum/quickreturn/internal/export"
	"github.com/san-kum/quickreturn/internal/linkage"
	"github.com/san-kum/quickreturn/internal/metrics"
	"github.com/san-kum/quickreturn/internal/optim"
	"github.com/san-kum/quickreturn/internal/storage"
	"github.com/san-kum/quickreturn/internal/sweep"
	"github.com/san-kum/quickreturn/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	r1, r2, r4, r5, r7 float64
	theta1             float64
	omega              float64
	angle              float64
	samples            int
	usc                bool
	crossed            bool

	workers  int
	csvOut   bool
	saveRun  bool
	runName  string
	svgPath  string
	output   string
	filePath string
	fps      int
	theme    string
	orders   int

	targetStroke float64
	targetRatio  float64
	vary         []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quickreturn",
		Short: "quick-return mechanism kinematics lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				linkage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".quickreturn", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log solver activity to stderr")
	pf.Float64Var(&r1, "r1", config.DefaultR1, "ground link O4-O2")
	pf.Float64Var(&r2, "r2", config.DefaultR2, "crank O2-A")
	pf.Float64Var(&r4, "r4", config.DefaultR4, "rocker O4-B")
	pf.Float64Var(&r5, "r5", config.DefaultR5, "coupler B-C")
	pf.Float64Var(&r7, "r7", config.DefaultR7, "slider line offset from O4")
	pf.Float64Var(&theta1, "theta1", config.DefaultTheta1, "ground link angle (deg)")
	pf.Float64Var(&omega, "omega", config.DefaultOmega2, "crank angular velocity (rad/s)")
	pf.Float64Var(&angle, "angle", config.DefaultTheta2, "crank angle (deg)")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "samples per revolution")
	pf.BoolVar(&usc, "usc", false, "label lengths in feet")
	pf.BoolVar(&crossed, "crossed", false, "use the crossed coupler assembly")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve position and velocity at one crank angle",
		Args:  cobra.NoArgs,
		RunE:  solvePose,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve a full crank revolution",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as CSV to stdout")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "store the sweep in the data directory")
	sweepCmd.Flags().StringVar(&runName, "name", "sweep", "run name when saving")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cores)")

	plotCmd := &cobra.Command{
		Use:   "plot [quantity...]",
		Short: "plot quantities over one revolution",
		Long:  "plot quantities over one revolution\n\nquantities: " + quantityList(),
		RunE:  plotSweep,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the first curve as SVG")

	displayCmd := &cobra.Command{
		Use:   "display",
		Short: "draw the mechanism at one crank angle",
		Args:  cobra.NoArgs,
		RunE:  displayPose,
	}
	displayCmd.Flags().StringVarP(&output, "output", "o", "display", "display, stream or file")
	displayCmd.Flags().StringVarP(&filePath, "file", "f", "", "output file (svg)")
	displayCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "turn the crank",
		Args:  cobra.NoArgs,
		RunE:  animate,
	}
	animateCmd.Flags().StringVarP(&output, "output", "o", "display", "display, stream or file")
	animateCmd.Flags().StringVarP(&filePath, "file", "f", "", "output file (gif)")
	animateCmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	animateCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	harmonicsCmd := &cobra.Command{
		Use:   "harmonics [quantity]",
		Short: "fourier decomposition of one revolution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  harmonicReport,
	}
	harmonicsCmd.Flags().IntVar(&orders, "orders", 8, "number of harmonics")

	phaseCmd := &cobra.Command{
		Use:   "phase [x] [y]",
		Short: "phase portrait of two quantities",
		Long:  "phase portrait of two quantities (default slider_pos slider_vel)\n\nquantities: " + quantityList(),
		Args:  cobra.MaximumNArgs(2),
		RunE:  phasePlot,
	}

	designCmd := &cobra.Command{
		Use:   "design",
		Short: "grid-search link lengths for a target stroke and time ratio",
		Long: "grid-search link lengths for a target stroke and time ratio\n\n" +
			"each --vary takes name=lo:hi:n, name one of r1, r2, r4, r5, r7",
		Args: cobra.NoArgs,
		RunE: designSearch,
	}
	designCmd.Flags().Float64Var(&targetStroke, "stroke", 0, "target stroke length")
	designCmd.Flags().Float64Var(&targetRatio, "ratio", 0, "target time ratio")
	designCmd.Flags().StringArrayVar(&vary, "vary", nil, "parameter range, e.g. r2=0.008:0.014:7")

	strokeCmd := &cobra.Command{
		Use:   "stroke",
		Short: "stroke length and time ratio",
		Args:  cobra.NoArgs,
		RunE:  strokeReport,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUNITS\tASSEMBLY\tR1\tR2\tR4\tR5\tR7\tOMEGA2\tSAMPLES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%d\n",
					name, p.Units, p.Assembly, p.Links.R1, p.Links.R2, p.Links.R4, p.Links.R5, p.Links.R7, p.Omega2, p.Samples)
			}
			return w.Flush()
		},
	}

	convertCmd := &cobra.Command{
		Use:   "convert [si|usc]",
		Short: "print the configuration with lengths in another unit system",
		Args:  cobra.ExactArgs(1),
		RunE:  convertConfig,
	}
	convertCmd.Flags().StringVarP(&filePath, "file", "f", "", "write the yaml to a file")

	rootCmd.AddCommand(solveCmd, sweepCmd, plotCmd, displayCmd, animateCmd, strokeCmd, harmonicsCmd, phaseCmd, designCmd, listCmd, showCmd, exportJSONCmd, presetsCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the default configuration, a preset, a config file and
// finally any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("r1") {
		cfg.Links.R1 = r1
	}
	if flags.Changed("r2") {
		cfg.Links.R2 = r2
	}
	if flags.Changed("r4") {
		cfg.Links.R4 = r4
	}
	if flags.Changed("r5") {
		cfg.Links.R5 = r5
	}
	if flags.Changed("r7") {
		cfg.Links.R7 = r7
	}
	if flags.Changed("theta1") {
		cfg.Theta1 = theta1
	}
	if flags.Changed("omega") {
		cfg.Omega2 = omega
	}
	if flags.Changed("angle") {
		cfg.Theta2 = angle
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("usc") && usc {
		cfg.Units = linkage.USC.String()
	}
	if flags.Changed("crossed") && crossed {
		cfg.Assembly = linkage.Crossed.String()
	}
	return cfg, nil
}

func loadMechanism(cmd *cobra.Command) (*config.Config, *linkage.Mechanism, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	m, err := cfg.Mechanism()
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func solvePose(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadMechanism(cmd)
	if err != nil {
		return err
	}
	sol, err := m.Solution(cfg.DriveAngle())
	if err != nil {
		return err
	}
	lc := m.Config()
	u := lc.Units

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "theta2\t%.4f deg\tomega2\t%.4f rad/s\n", deg(sol.Theta2), sol.Omega2)
	fmt.Fprintf(w, "theta4\t%.4f deg\tomega4\t%.6f rad/s\n", deg(sol.Theta4), sol.Omega4)
	fmt.Fprintf(w, "theta5\t%.4f deg\tomega5\t%.6f rad/s\n", deg(sol.Theta5), sol.Omega5)
	fmt.Fprintf(w, "r3\t%.6f %s\tr3_dot\t%.6f %s\n", sol.R3, u.Length(), sol.R3Dot, u.Speed())
	fmt.Fprintf(w, "r6\t%.6f %s\tr6_dot\t%.6f %s\n", sol.R6, u.Length(), sol.R6Dot, u.Speed())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "POINT\tX\tY\tVX\tVY")
	for _, pt := range []linkage.Point{linkage.PointA, linkage.PointB, linkage.PointC} {
		z, err := sol.Point(lc.Geometry, pt)
		if err != nil {
			return err
		}
		v, err := sol.PointVelocity(pt)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\n", pt, real(z), imag(z), real(v), imag(v))
	}
	pos, vel := sol.Residuals(lc.Geometry)
	fmt.Fprintf(w, "\nresidual\tposition %.2e\tvelocity %.2e\n", pos, vel)
	return w.Flush()
}

func sweepConfig(cmd *cobra.Command) (*config.Config, *sweep.Result, error) {
	cfg, m, err := loadMechanism(cmd)
	if err != nil {
		return nil, nil, err
	}
	res, err := sweep.Run(context.Background(), m.Config(), sweep.Options{Start: cfg.DriveAngle(), Workers: workers})
	if err != nil {
		return nil, nil, err
	}
	for _, f := range res.Skipped {
		linkage.Logger().Warn("sample skipped", "index", f.Index, "theta2_deg", deg(f.Angle), "err", f.Err)
	}
	return cfg, res, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, res, err := sweepConfig(cmd)
	if err != nil {
		return err
	}

	if csvOut {
		if err := storage.WriteCSV(os.Stdout, res); err != nil {
			return err
		}
	}

	summary := metrics.Summary(res)
	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		name := runName
		if !cmd.Flags().Changed("name") && cfg.Name != "" {
			name = cfg.Name
		}
		runID, err := st.Save(name, res, summary)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved: %s\n", runID)
	}

	if csvOut {
		return nil
	}
	fmt.Printf("%d samples, %d skipped\n", len(res.Samples), len(res.Skipped))
	return printSummary(summary, res.Config.Units)
}

func printSummary(summary map[string]float64, u linkage.UnitSystem) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "stroke\t%.6f %s\n", summary["stroke"], u.Length())
	fmt.Fprintf(w, "time ratio\t%.4f\n", summary["time_ratio"])
	fmt.Fprintf(w, "peak velocity\t%.6f %s\n", summary["peak_velocity"], u.Speed())
	fmt.Fprintf(w, "max residual\t%.2e\n", summary["max_residual"])
	return w.Flush()
}

func quantityList() string {
	qs := sweep.Quantities()
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = string(q)
	}
	return strings.Join(names, ", ")
}

func plotSweep(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{string(sweep.SliderPosition)}
	}
	quantities := make([]sweep.Quantity, 0, len(args))
	for _, a := range args {
		q, err := sweep.ParseQuantity(a)
		if err != nil {
			return err
		}
		quantities = append(quantities, q)
	}

	_, res, err := sweepConfig(cmd)
	if err != nil {
		return err
	}
	if len(res.Samples) < 2 {
		return fmt.Errorf("not enough samples to plot: %d solved", len(res.Samples))
	}

	u := res.Config.Units
	for i, q := range quantities {
		xs, ys := res.Series(q)
		graph := asciigraph.Plot(ys,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(q.Caption(u)),
		)
		fmt.Println(graph)
		fmt.Println()

		if i == 0 && svgPath != "" {
			degs := make([]float64, len(xs))
			for j, x := range xs {
				degs[j] = deg(x)
			}
			svg := export.CurveSVG(degs, ys, 800, 400, "#00ffcc", q.Caption(u)+" vs crank angle (deg)")
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s\n", svgPath)
		}
	}
	return nil
}

func parseOutput() (viz.Output, error) {
	target, err := viz.ParseTarget(output)
	if err != nil {
		return viz.Output{}, err
	}
	return viz.Output{Target: target, Path: filePath, Theme: theme}, nil
}

func displayPose(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadMechanism(cmd)
	if err != nil {
		return err
	}
	out, err := parseOutput()
	if err != nil {
		return err
	}
	return viz.DisplayPosition(m, cfg.DriveAngle(), out)
}

func animate(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadMechanism(cmd)
	if err != nil {
		return err
	}
	out, err := parseOutput()
	if err != nil {
		return err
	}
	opts := viz.AnimateOptions{
		Start: cfg.DriveAngle(),
		FPS:   fps,
		Theme: theme,
	}
	if cfg.Name != "" {
		opts.GIFPath = cfg.Name + ".gif"
	}
	return viz.Animate(m, out, opts)
}

func strokeReport(cmd *cobra.Command, args []string) error {
	_, res, err := sweepConfig(cmd)
	if err != nil {
		return err
	}
	u := res.Config.Units

	stroke := metrics.NewStroke()
	ratio := metrics.NewTimeRatio()
	peak := metrics.NewPeakVelocity()
	metrics.Summary(res, stroke, ratio, peak)

	atMin, atMax := stroke.Angles()
	forward, back := ratio.Travel()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "min\t%.6f %s\tat theta2 %.2f deg\n", stroke.Min(), u.Length(), deg(atMin))
	fmt.Fprintf(w, "max\t%.6f %s\tat theta2 %.2f deg\n", stroke.Max(), u.Length(), deg(atMax))
	fmt.Fprintf(w, "stroke\t%.6f %s\n", stroke.Value(), u.Length())
	fmt.Fprintf(w, "crank travel\t%.2f deg out\t%.2f deg back\n", deg(forward), deg(back))
	fmt.Fprintf(w, "time ratio\t%.4f\n", ratio.Value())
	fmt.Fprintf(w, "peak velocity\t%.6f %s\n", peak.Value(), u.Speed())
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "skipped\t%d of %d\n", len(res.Skipped), res.Config.Samples)
	}
	return w.Flush()
}

func harmonicReport(cmd *cobra.Command, args []string) error {
	q := sweep.SliderPosition
	if len(args) > 0 {
		var err error
		if q, err = sweep.ParseQuantity(args[0]); err != nil {
			return err
		}
	}
	_, res, err := sweepConfig(cmd)
	if err != nil {
		return err
	}
	if len(res.Skipped) > 0 {
		return fmt.Errorf("harmonics need a full revolution: %d of %d samples skipped", len(res.Skipped), res.Config.Samples)
	}

	_, values := res.Series(q)
	hs, err := analysis.Harmonics(values, orders)
	if err != nil {
		return err
	}

	fmt.Println(q.Caption(res.Config.Units))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tAMPLITUDE\tPHASE (deg)")
	for _, h := range hs {
		fmt.Fprintf(w, "%d\t%.6g\t%.2f\n", h.Order, h.Amplitude, deg(h.Phase))
	}
	fmt.Fprintf(w, "\ndistortion\t%.4f\n", analysis.Distortion(hs))
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	names := []string{string(sweep.SliderPosition), string(sweep.SliderVelocity)}
	copy(names, args)
	x, err := sweep.ParseQuantity(names[0])
	if err != nil {
		return err
	}
	y, err := sweep.ParseQuantity(names[1])
	if err != nil {
		return err
	}

	_, res, err := sweepConfig(cmd)
	if err != nil {
		return err
	}
	u := res.Config.Units
	fmt.Printf("%s vs %s\n", y.Caption(u), x.Caption(u))
	fmt.Print(analysis.NewPortrait(res, x, y).ASCII(80, 24))
	return nil
}

func designSearch(cmd *cobra.Command, args []string) error {
	if targetStroke == 0 && targetRatio == 0 {
		return fmt.Errorf("set --stroke, --ratio or both")
	}
	if len(vary) == 0 {
		return fmt.Errorf("at least one --vary is required")
	}
	names := make([]string, 0, len(vary))
	ranges := make([][]float64, 0, len(vary))
	for _, v := range vary {
		name, rangeText, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("bad --vary %q (want name=lo:hi:n)", v)
		}
		r, err := optim.ParseRange(rangeText)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, r)
	}

	cfg, m, err := loadMechanism(cmd)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	target := optim.Target{Stroke: targetStroke, TimeRatio: targetRatio}
	best, score, err := gs.Search(context.Background(), m.Config(), target.Objective())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%g\n", name, best[name])
	}
	fmt.Fprintf(w, "score\t%.3e\n", score)
	if err := w.Flush(); err != nil {
		return err
	}

	for k, v := range best {
		switch k {
		case "r1":
			cfg.Links.R1 = v
		case "r2":
			cfg.Links.R2 = v
		case "r4":
			cfg.Links.R4 = v
		case "r5":
			cfg.Links.R5 = v
		case "r7":
			cfg.Links.R7 = v
		case "theta1":
			cfg.Theta1 = deg(v)
		}
	}
	fmt.Println()
	return config.Encode(os.Stdout, cfg)
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
	fmt.Fprintln(w, "ID\tTIME\tUNITS\tASSEMBLY\tSAMPLES\tSTROKE\tRATIO")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.5f\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Units,
			run.Assembly,
			run.Samples,
			run.Metrics["stroke"],
			run.Metrics["time_ratio"],
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
	rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	u, err := linkage.ParseUnits(meta.Units)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s  %s\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"), meta.Assembly)
	fmt.Printf("r1=%g r2=%g r4=%g r5=%g r7=%g %s  theta1=%.2f deg  omega2=%g rad/s\n",
		meta.R1, meta.R2, meta.R4, meta.R5, meta.R7, u.Length(), deg(meta.Theta1), meta.Omega2)
	fmt.Printf("%d samples, %d skipped\n\n", len(rows), len(meta.Skipped))
	if err := printSummary(meta.Metrics, u); err != nil {
		return err
	}

	col := storage.Column("r6")
	if len(rows) < 2 || col < 0 {
		return nil
	}
	series := make([]float64, len(rows))
	for i, row := range rows {
		series[i] = row[col]
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(sweep.SliderPosition.Caption(u)),
	))
	return nil
}

func convertConfig(cmd *cobra.Command, args []string) error {
	to, err := linkage.ParseUnits(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	converted, err := cfg.Convert(to)
	if err != nil {
		return err
	}
	if filePath != "" {
		return config.Save(filePath, converted)
	}
	return config.Encode(os.Stdout, converted)
}
