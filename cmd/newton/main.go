package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/johnxnguyen/newton/internal/config"
	"github.com/johnxnguyen/newton/internal/metrics"
	"github.com/johnxnguyen/newton/internal/sink"
	"github.com/johnxnguyen/newton/internal/storage"
	"github.com/johnxnguyen/newton/internal/viz"
)

var (
	outputDir string
	frames    int
	seed      int64
	preset    string
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newton [config]",
		Short: "gravitational n-body simulator",
		Long: "newton simulates the gravitational n-body problem with a " +
			"Barnes-Hut quadtree and writes per-frame body positions as text files.",
		Args: cobra.MaximumNArgs(1),
		RunE: runSimulation,
	}
	rootCmd.Flags().StringVar(&outputDir, "output", "out", "destination directory for per-frame files")
	rootCmd.Flags().IntVar(&frames, "frames", 150, "number of steps to simulate")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed, or the clock)")
	rootCmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset instead of a config file")

	liveCmd := &cobra.Command{
		Use:   "live [config]",
		Short: "run the simulation with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset instead of a config file")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed, or the clock)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [run_dir]",
		Short: "plot the metric history of a finished run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "list finished runs under a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, plotCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the positional config path or the --preset flag.
func loadConfig(args []string) (*config.Config, string, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		return cfg, preset, nil
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("a config file or --preset is required")
	}
	cfg, err := config.Load(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, args[0], nil
}

func resolveSeed(cfg *config.Config) int64 {
	if seed != 0 {
		return seed
	}
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(args)
	if err != nil {
		return err
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	runSeed := resolveSeed(cfg)
	field := cfg.NewField()
	if err := cfg.Populate(field, rand.New(rand.NewSource(runSeed))); err != nil {
		return err
	}

	writer := sink.NewWriter(outputDir)
	if err := writer.Init(); err != nil {
		return err
	}

	observed := []metrics.Metric{
		metrics.NewEnergy(),
		metrics.NewMomentum(),
		metrics.NewCenterDrift(),
	}

	fmt.Printf("simulating %d bodies for %d frames...\n", field.Len(), frames)
	start := time.Now()

	for frame := 0; frame < frames; frame++ {
		field.Step()
		if err := writer.WriteFrame(frame, field.Bodies()); err != nil {
			return err
		}
		for _, m := range observed {
			m.Observe(field, frame)
		}
	}

	elapsed := time.Since(start)

	st := storage.New(outputDir)
	meta := storage.RunMetadata{
		ID:        filepath.Base(outputDir),
		Timestamp: time.Now(),
		Config:    source,
		Seed:      runSeed,
		Frames:    frames,
		Bodies:    field.Len(),
		G:         cfg.G,
		Theta:     cfg.Theta,
		Dt:        cfg.Dt,
	}
	if err := st.Save(meta, observed); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames written to %s\n", outputDir)
	fmt.Println("\nmetrics:")
	for _, m := range observed {
		fmt.Printf("  %s: %.6g\n", m.Name(), m.Value())
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	cfg.Seed = resolveSeed(cfg)
	return viz.RunLive(cfg, frameRate)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(args[0])

	meta, err := st.Load()
	if err != nil {
		return err
	}
	history, err := st.LoadHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no metric history to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d, frames: %d\n\n", meta.Bodies, meta.Frames)

	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(history[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.List(args[0])
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCONFIG\tBODIES\tFRAMES\tTHETA\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config,
			run.Bodies,
			run.Frames,
			run.Theta,
			run.Seed,
		)
	}
	return w.Flush()
}
