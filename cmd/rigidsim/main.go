package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/solver/planar"
	"github.com/san-kum/rigidsim/internal/space"
	"github.com/san-kum/rigidsim/internal/tui"
	"github.com/san-kum/rigidsim/internal/worker"
)

var (
	configFile string
	preset     string
	crates     int
	duration   float64
	tickRate   int
	presim     int
	substeps   int
	gravityY   float64
	seed       int64
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "rigid-body tick scheduler playground",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&crates, "crates", config.DefaultCrates, "number of crates to drop")
	rootCmd.PersistentFlags().IntVar(&tickRate, "rate", config.DefaultTickRate, "ticks per second")
	rootCmd.PersistentFlags().IntVar(&presim, "presim", config.DefaultMaxPresimSteps, "warm-up steps before live time")
	rootCmd.PersistentFlags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "solver substeps per live step")
	rootCmd.PersistentFlags().Float64Var(&gravityY, "gravity", config.DefaultGravityY, "vertical gravity (m/s/s)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "scene random seed")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "tick a drop scene and plot the result",
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "seconds to simulate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "tick a drop scene with a live terminal view",
		RunE:  runLive,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure step throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 5.0, "seconds to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	default:
		cfg = config.DefaultConfig()
		cfg.Scene.Crates = crates
		cfg.TickRate = tickRate
		cfg.MaxPresimSteps = presim
		cfg.Substeps = substeps
		cfg.Gravity.Y = gravityY
		cfg.Scene.Seed = seed
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	if !verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zapCfg.Build()
}

func buildSpace(cfg *config.Config, log *zap.Logger) (*space.Space, *worker.Worker, []*scene.Crate) {
	w := worker.New()

	var s *space.Space
	solv := planar.New(body.Vec2{X: cfg.Gravity.X, Y: cfg.Gravity.Y}, func() []body.Body {
		return s.Registry().All()
	})
	s = space.New(space.Config{
		MaxPresimSteps: cfg.MaxPresimSteps,
		Substeps:       cfg.Substeps,
		Logger:         log,
	}, w, solv)

	crates := scene.Build(cfg, s)
	return s, w, crates
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Scene.Crates < 1 {
		return fmt.Errorf("scene needs at least one crate")
	}

	s, w, crates := buildSpace(cfg, log)
	defer w.Close()

	var landings int
	s.OnBlockCollision(func(el body.PhysicsElement, blk *body.Block, impulse float64) {
		landings++
		log.Debug("block collision", zap.Float64("impulse", impulse))
	})

	tracked := crates[0].Body()
	var heights []float64

	ticks := int(duration * float64(cfg.TickRate))
	interval := time.Second / time.Duration(cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("running scene",
		zap.Int("crates", len(crates)),
		zap.Int("ticks", ticks),
		zap.Int("tick_rate", cfg.TickRate))

	for i := 0; i < ticks; i++ {
		<-ticker.C
		s.Step(func() bool { return true })
		heights = append(heights, tracked.Transform().Pos.Y)
	}
	for s.IsStepping() {
		s.Drain()
		time.Sleep(time.Millisecond)
	}

	log.Info("scene finished",
		zap.Int("block_collisions", landings),
		zap.Float64("final_height", tracked.Transform().Pos.Y))

	fmt.Println()
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(12),
		asciigraph.Caption("tracked crate height over ticks")))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, w, _ := buildSpace(cfg, zap.NewNop())
	defer w.Close()

	viewer := tui.NewViewer(s, cfg.TickRate, cfg.Scene.GroundWidth)
	_, err = tea.NewProgram(viewer).Run()
	return err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, w, _ := buildSpace(cfg, zap.NewNop())
	defer w.Close()

	deadline := time.Now().Add(time.Duration(duration * float64(time.Second)))
	var steps, skipped int
	start := time.Now()
	for time.Now().Before(deadline) {
		if s.CanStep() {
			steps++
		} else {
			skipped++
		}
		s.Step(func() bool { return true })
	}
	for s.IsStepping() {
		s.Drain()
		time.Sleep(time.Millisecond)
	}
	elapsed := time.Since(start)

	log.Info("bench finished",
		zap.Int("steps", steps),
		zap.Int("skipped_ticks", skipped),
		zap.Duration("elapsed", elapsed),
		zap.Float64("steps_per_sec", float64(steps)/elapsed.Seconds()))
	return nil
}
