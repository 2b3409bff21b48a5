package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/camera"
	"github.com/hollowpine/stride/internal/character"
	"github.com/hollowpine/stride/internal/config"
	"github.com/hollowpine/stride/internal/console"
	"github.com/hollowpine/stride/internal/ground"
	"github.com/hollowpine/stride/internal/locomotion"
	"github.com/hollowpine/stride/internal/logger"
	"github.com/hollowpine/stride/internal/terrain"
)

const demoSlopeLimitDeg = 45

func main() {
	configPath := flag.String("config", "configs/stride.yaml", "path to the tuning file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	field := rollingHills()
	start := mgl64.Vec3{32, 4, 32}
	mover := terrain.NewCapsuleMover(field, start, demoSlopeLimitDeg)

	ctrl := character.New(field, mover, character.Options{
		Start:      start,
		Tuning:     tuning(cfg),
		Look:       rotator(cfg),
		BlendSpeed: cfg.Animation.BlendSpeed,
		GroundMask: ground.Mask(cfg.Movement.GroundLayers),
	})

	cons := console.New(ctrl)
	err = config.Watch(ctx, *configPath, func(next *config.Config) {
		cons.Defer(func() {
			ctrl.Retune(tuning(next), rotator(next), next.Animation.BlendSpeed)
			slog.Info("tuning reloaded",
				"max_speed", next.Movement.MaxSpeed,
				"acceleration", next.Movement.Acceleration,
			)
		})
	})
	if err != nil {
		slog.Warn("config watch unavailable", "error", err)
	}

	if err := cons.Run(ctx); err != nil {
		slog.Error("console exited", "error", err)
		os.Exit(1)
	}
}

func tuning(cfg *config.Config) locomotion.Tuning {
	return locomotion.Tuning{
		Acceleration:  cfg.Movement.Acceleration,
		MaxSpeed:      cfg.Movement.MaxSpeed,
		Drag:          cfg.Movement.Drag,
		MoveThreshold: cfg.Movement.MoveThreshold,
		Gravity:       cfg.Movement.Gravity,
	}
}

func rotator(cfg *config.Config) camera.Rotator {
	return camera.Rotator{
		SenseH:     cfg.Look.SenseH,
		SenseV:     cfg.Look.SenseV,
		PitchLimit: cfg.Look.LimitV,
	}
}

// rollingHills builds a 64x64 unit field of gentle procedural terrain.
func rollingHills() *terrain.Heightfield {
	field := terrain.New(128, 128, 0.5)
	field.Fill(func(x, z int) float64 {
		return 1.5*math.Sin(float64(x)*0.12) + 1.2*math.Cos(float64(z)*0.09)
	})
	return field
}
