package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/isingviz/internal/config"
	"github.com/san-kum/isingviz/internal/export"
	"github.com/san-kum/isingviz/internal/fss"
	"github.com/san-kum/isingviz/internal/render"
	"github.com/san-kum/isingviz/internal/snapshot"
	"github.com/san-kum/isingviz/internal/storage"
	"github.com/san-kum/isingviz/internal/viz"
)

var (
	configFile string
	verbose    bool

	// collapse, inspect, export
	dataDir string
	sizes   []int
	preset  string
	mode    string
	output  string
	strict  bool
	format  string

	// animate
	snapIn   string
	animOut  string
	grid     int
	fps      int
	animFmt  string
	caption  bool
	cellSize int
)

var logger *slog.Logger

// main registers the isingviz commands and exits with status 1 when the
// selected command fails.
func main() {
	_ = godotenv.Load(".env")

	rootCmd := &cobra.Command{
		Use:           "isingviz",
		Short:         "finite size scaling and domain growth plots for Ising simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	collapseCmd := &cobra.Command{
		Use:   "collapse",
		Short: "plot raw susceptibility and the scaling collapse",
		Args:  cobra.NoArgs,
		RunE:  runCollapse,
	}
	addTableFlags(collapseCmd)
	collapseCmd.Flags().StringVar(&mode, "mode", "save", "output mode: display or save")
	collapseCmd.Flags().StringVarP(&output, "out", "o", config.DefaultFigurePath, "figure path in save mode")
	collapseCmd.Flags().BoolVar(&strict, "strict", false, "fail when no table is found")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render spin snapshots as an animation",
		Args:  cobra.NoArgs,
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVarP(&snapIn, "in", "i", config.DefaultSnapshotPath, "snapshot file")
	animateCmd.Flags().StringVarP(&animOut, "out", "o", config.DefaultAnimationPath, "animation path")
	animateCmd.Flags().IntVar(&grid, "grid", config.DefaultGrid, "lattice side of every snapshot")
	animateCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	animateCmd.Flags().StringVar(&animFmt, "format", "gif", "animation format: gif or avi")
	animateCmd.Flags().BoolVar(&caption, "caption", false, "stamp frame index and magnetization")
	animateCmd.Flags().IntVar(&cellSize, "cell", config.DefaultCellSize, "pixels per lattice site")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "summarize observable tables in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	addTableFlags(inspectCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export collapsed coordinates",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addTableFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "csv", "csv, json or xlsx")
	exportCmd.Flags().StringVarP(&output, "out", "o", "", "output file (stdout for csv/json when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list critical exponent presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTC\tGAMMA\tNU\tNOTE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%s\n", name, p.Tc, p.Gamma, p.Nu, p.Note)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print the effective config, or write it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return config.Save(args[0], cfg)
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(collapseCmd, animateCmd, inspectCmd, exportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dataDir, "data", "d", ".", "directory holding the observable tables")
	cmd.Flags().IntSliceVar(&sizes, "sizes", config.DefaultSizes, "lattice sizes, in legend order")
	cmd.Flags().StringVar(&preset, "preset", "", "critical exponent preset")
}

// loadConfig layers defaults, the config file, the environment and finally
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("preset") && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("unknown preset %q (see isingviz presets)", preset)
	}
	if flags.Changed("data") {
		cfg.Collapse.DataDir = dataDir
	}
	if flags.Changed("sizes") {
		cfg.Scaling.Sizes = slices.Clone(sizes)
	}
	if flags.Changed("mode") {
		cfg.Collapse.Mode = mode
	}
	if flags.Changed("strict") {
		cfg.Collapse.Strict = strict
	}
	if cmd.Name() == "collapse" && flags.Changed("out") {
		cfg.Collapse.Output = output
	}
	if flags.Changed("in") {
		cfg.Animation.Input = snapIn
	}
	if cmd.Name() == "animate" && flags.Changed("out") {
		cfg.Animation.Output = animOut
	}
	if flags.Changed("grid") {
		cfg.Animation.Grid = grid
	}
	if flags.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if cmd.Name() == "animate" && flags.Changed("format") {
		cfg.Animation.Format = animFmt
	}
	if flags.Changed("caption") {
		cfg.Animation.Caption = caption
	}
	if flags.Changed("cell") {
		cfg.Animation.CellSize = cellSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("effective config",
		slog.Float64("tc", cfg.Scaling.Tc),
		slog.Float64("gamma", cfg.Scaling.Gamma),
		slog.Float64("nu", cfg.Scaling.Nu),
		slog.Any("sizes", cfg.Scaling.Sizes))
	return cfg, nil
}

func analyze(cfg *config.Config) (*fss.Figure, error) {
	store := storage.New(cfg.Collapse.DataDir).WithPattern(cfg.Collapse.TablePattern)
	params := fss.Params{
		Tc:    cfg.Scaling.Tc,
		Gamma: cfg.Scaling.Gamma,
		Nu:    cfg.Scaling.Nu,
		Sizes: cfg.Scaling.Sizes,
	}
	a := fss.NewAnalyzer(params, cfg.Scaling.Palette, store,
		fss.WithStrict(cfg.Collapse.Strict),
		fss.WithLogger(logger))
	return a.Run()
}

func runCollapse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := fss.ParseMode(cfg.Collapse.Mode)
	if err != nil {
		return err
	}
	fig, err := analyze(cfg)
	if err != nil {
		return err
	}

	if m == fss.ModeDisplay {
		return viz.Show(fig, cfg.Collapse.XMin, cfg.Collapse.XMax)
	}

	opts := render.FigureOptions{
		WidthIn:  cfg.Collapse.WidthIn,
		HeightIn: cfg.Collapse.HeightIn,
		DPI:      cfg.Collapse.DPI,
		XMin:     cfg.Collapse.XMin,
		XMax:     cfg.Collapse.XMax,
	}
	if err := render.SaveFigure(cfg.Collapse.Output, fig, opts); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	logger.Info("figure saved",
		slog.String("path", cfg.Collapse.Output),
		slog.Int("series", len(fig.Series)),
		slog.Any("skipped", fig.Skipped))
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	seq, err := snapshot.Load(cfg.Animation.Input, cfg.Animation.Grid)
	if err != nil {
		return err
	}
	logger.Info("snapshots loaded",
		slog.String("path", cfg.Animation.Input),
		slog.Int("frames", seq.Len()),
		slog.Int("grid", seq.Grid))

	a := render.NewAnimator(render.AnimationOptions{
		FPS:      cfg.Animation.FPS,
		CellSize: cfg.Animation.CellSize,
		Up:       cfg.Animation.UpColor,
		Down:     cfg.Animation.DownColor,
		Caption:  cfg.Animation.Caption,
		Format:   render.Format(cfg.Animation.Format),
	}, logger)
	return a.Save(cfg.Animation.Output, seq)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fig, err := analyze(cfg)
	if err != nil {
		return err
	}
	if fig.Empty() {
		fmt.Println("no observable tables found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "L\tSAMPLES\tT_MIN\tT_MAX\tPEAK_T\tPEAK_CHI")
	for _, s := range fig.Series {
		sum := fss.Summarize(&fss.Record{L: s.L, Samples: s.Raw})
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			sum.L, sum.Samples, sum.TMin, sum.TMax, sum.PeakT, sum.PeakChi)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(fig.Skipped) > 0 {
		fmt.Printf("missing sizes: %v\n", fig.Skipped)
	}

	if curves, colors := inspectCurves(fig); len(curves) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(curves,
			asciigraph.Height(15),
			asciigraph.Width(70),
			asciigraph.SeriesColors(colors...),
			asciigraph.Caption("chi vs T (ascending)")))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	fig, err := analyze(cfg)
	if err != nil {
		return err
	}

	if output == "" {
		if f == export.FormatXLSX {
			return fmt.Errorf("xlsx export needs --out")
		}
		return export.Write(os.Stdout, fig, f)
	}
	if err := export.WriteFile(output, fig, f); err != nil {
		return err
	}
	logger.Info("export written", slog.String("path", output), slog.String("format", string(f)))
	return nil
}

// inspectCurves returns the Chi column of every loaded size with the colour
// its legend entry uses in the figure.
func inspectCurves(fig *fss.Figure) ([][]float64, []asciigraph.AnsiColor) {
	var (
		curves [][]float64
		colors []asciigraph.AnsiColor
	)
	for _, s := range fig.Series {
		if len(s.Raw) == 0 {
			continue
		}
		curves = append(curves, (&fss.Record{Samples: s.Raw}).Susceptibilities())
		colors = append(colors, ansiColor(s.Entry.Color))
	}
	return curves, colors
}

// ansiColor maps a hex colour onto the 6x6x6 cube of the xterm 256-colour
// palette.
func ansiColor(hex string) asciigraph.AnsiColor {
	c := drawing.ColorFromHex(hex)
	level := func(v uint8) int {
		switch {
		case v < 48:
			return 0
		case v < 115:
			return 1
		}
		return (int(v) - 35) / 40
	}
	return asciigraph.AnsiColor(16 + 36*level(c.R) + 6*level(c.G) + level(c.B))
}
