package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/automation"
	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/export"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/storage"
	"github.com/san-kum/sandfall/internal/terrain"
	"github.com/san-kum/sandfall/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string

	gridSize    int
	cellWidth   int
	borderWidth int
	theme       string
	layout      string
	seed        int64
	brushSize   int
	interval    time.Duration
	incremental bool

	logFile  string
	gifPath  string
	gifEvery int
	pngPath  string
	svgPath  string
	jsonPath string
	noSave   bool
)

func main() {
	log.SetPrefix("sandfall: ")

	rootCmd := &cobra.Command{
		Use:   "sandfall",
		Short: "falling sand sandbox",
		RunE:  runWindow,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", ".sandfall", "data directory")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.IntVar(&gridSize, "grid", config.DefaultGridSize, "cells per side")
	flags.IntVar(&cellWidth, "cell", render.DefaultCellWidth, "cell width in pixels")
	flags.IntVar(&borderWidth, "border", render.DefaultBorderWidth, "cursor outline width in pixels")
	flags.StringVar(&theme, "theme", render.DefaultTheme.Name, "color theme")
	flags.StringVar(&layout, "layout", config.DefaultLayout, "obstacle layout")
	flags.Int64Var(&seed, "seed", 0, "layout seed")
	flags.IntVar(&brushSize, "brush", input.DefaultBrushSize, "initial brush size in cells")
	flags.DurationVar(&interval, "interval", config.DefaultFrameInterval, "frame interval")
	flags.BoolVar(&incremental, "incremental", true, "redraw only changed cells")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the sandbox in a window",
		RunE:  runWindow,
	}

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "run the sandbox in the terminal",
		RunE:  runTerm,
	}
	termCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")

	replayCmd := &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "replay a scripted scenario headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&gifPath, "gif", "", "write an animated gif")
	replayCmd.Flags().IntVar(&gifEvery, "gif-every", 4, "keep every nth frame in the gif")
	replayCmd.Flags().StringVar(&pngPath, "png", "", "write the final frame as png")
	replayCmd.Flags().StringVar(&svgPath, "svg", "", "write the final grid as svg")
	replayCmd.Flags().StringVar(&jsonPath, "json", "", "write the final grid as json (- for stdout)")
	replayCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store a run report")

	runsCmd := &cobra.Command{
		Use:   "runs [run_id]",
		Short: "list stored replays, or plot one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&svgPath, "svg", "", "write the plotted profile as svg")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMPTY\tSOLID\tPARTICULATE\tOUTLINE")
			for _, name := range render.ThemeNames() {
				t, _ := render.GetTheme(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Name,
					render.FormatColor(t.Empty), render.FormatColor(t.Solid),
					render.FormatColor(t.Particulate), render.FormatColor(t.Outline))
			}
			return w.Flush()
		},
	}

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "list obstacle layouts",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range terrain.Names() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d  %s  %s\n", name, p.GridSize, p.GridSize, p.Theme, p.Layout)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	rootCmd.AddCommand(windowCmd, termCmd, replayCmd, runsCmd, themesCmd, layoutsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if flags.Changed("grid") {
		cfg.GridSize = gridSize
	}
	if flags.Changed("cell") {
		cfg.CellWidth = cellWidth
	}
	if flags.Changed("border") {
		cfg.BorderWidth = borderWidth
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("layout") {
		cfg.Layout = layout
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("brush") {
		cfg.Brush.Size = brushSize
	}
	if flags.Changed("interval") {
		cfg.FrameInterval = interval
	}
	if flags.Changed("incremental") {
		cfg.Incremental = incremental
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoop(cfg *config.Config) (*app.Loop, error) {
	loop, err := app.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	loop.LogTransitions(log.Default())
	log.Printf("grid %dx%d, theme %s, layout %s", cfg.GridSize, cfg.GridSize, cfg.Theme, cfg.LayoutName())
	return loop, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	return openWindow(cfg, loop)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// one terminal cell per grid cell
	cfg.CellWidth, cfg.BorderWidth = 1, 1

	if logFile == "" {
		log.SetOutput(io.Discard)
	}
	loop, err := newLoop(cfg)
	if err != nil {
		return err
	}
	return tui.Run(loop, logFile)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	theme, err := cfg.ResolveTheme()
	if err != nil {
		return err
	}
	var rec *render.Recorder
	if gifPath != "" {
		rec = render.NewRecorder(theme, gifEvery, 4)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("replaying %s\n", scenario.Name)
	res, err := automation.RunScenario(ctx, scenario, cfg, rec)
	if err != nil {
		return err
	}

	fmt.Printf("frames: %d  steps: %d  state: %s\n\n", res.Frames, res.Steps, res.State)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"spawned", "landed", "deferred", "abandoned", "fall_length"} {
		fmt.Fprintf(w, "%s\t%.2f\n", name, res.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if res.Profile.Cells > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Profile.Heights,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("pile height by column (peak %d at %d)", res.Profile.Peak, res.Profile.PeakCol)),
		))
	}

	var artifacts []string
	if rec != nil {
		if err := rec.Save(gifPath); err != nil {
			return err
		}
		artifacts = append(artifacts, gifPath)
		fmt.Printf("\ngif: %s (%d frames)\n", gifPath, rec.Len())
	}
	if pngPath != "" && res.Last != nil {
		if err := render.SavePNG(res.Last, pngPath); err != nil {
			return err
		}
		artifacts = append(artifacts, pngPath)
		fmt.Printf("png: %s\n", pngPath)
	}
	if svgPath != "" {
		if err := export.WriteSVG(svgPath, export.GridToSVG(res.Grid, theme, float64(cfg.CellWidth))); err != nil {
			return err
		}
		artifacts = append(artifacts, svgPath)
		fmt.Printf("svg: %s\n", svgPath)
	}
	if jsonPath != "" {
		data := export.NewGridData(res.Grid)
		data.Scenario = scenario.Name
		data.Steps = res.Steps
		data.Metrics = res.Metrics
		if jsonPath == "-" {
			if err := export.WriteJSON(os.Stdout, data); err != nil {
				return err
			}
		} else {
			if err := export.ExportJSON(jsonPath, data); err != nil {
				return err
			}
			artifacts = append(artifacts, jsonPath)
			fmt.Printf("json: %s\n", jsonPath)
		}
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	c := *cfg
	scenario.Configure(&c)
	runID, err := st.Save(&storage.RunMetadata{
		Scenario:  scenario.Name,
		Seed:      c.Seed,
		GridSize:  c.GridSize,
		Layout:    c.LayoutName(),
		Theme:     c.Theme,
		Frames:    res.Frames,
		Steps:     res.Steps,
		State:     res.State.String(),
		Metrics:   res.Metrics,
		Artifacts: artifacts,
	}, res.Profile.Heights)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if len(args) == 1 {
		return plotRun(st, args[0])
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tLAYOUT\tFRAMES\tLANDED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%.0f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridSize,
			run.Layout,
			run.Frames,
			run.Metrics["landed"],
		)
	}
	return w.Flush()
}

func plotRun(st *storage.Store, runID string) error {
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	heights, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no profile to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", meta.Frames)
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("pile height by column"),
	))

	if svgPath != "" {
		if err := export.WriteSVG(svgPath, export.ProfileToSVG(heights, 640, 240, "#d8ccbb")); err != nil {
			return err
		}
		fmt.Printf("\nsvg: %s\n", svgPath)
	}
	return nil
}
