package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"citywalk/internal/city"
	"citywalk/internal/config"
	"citywalk/internal/game"
	"citywalk/internal/logging"
	"citywalk/internal/term"
)

func main() {
	configDir := flag.String("config", ".", "directory containing citywalk.cfg.json")
	host := flag.String("host", "", "front-end: gl or term (overrides config)")
	frames := flag.Int("frames", 0, "run N frames headless and print the final pose")
	drive := flag.Bool("drive", false, "headless: board the nearest vehicle and drive forward")
	flag.Parse()

	if err := run(*configDir, *host, *frames, *drive); err != nil {
		fmt.Fprintf(os.Stderr, "citywalk: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir, host string, frames int, drive bool) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	if host != "" {
		config.Set("host", host)
	}
	s, err := config.Get()
	if err != nil {
		return err
	}

	var logOut io.Writer = os.Stderr
	if s.Host == "term" && frames == 0 {
		// The terminal owns stdout and stderr while the map is drawn.
		logOut = nil
	}
	if s.LogFile != "" {
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(logOut, s.LogLevel)
	log.Info().Str("host", s.Host).Uint64("seed", s.Seed).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if frames > 0 {
		return headless(ctx, s, log, frames, drive)
	}
	switch s.Host {
	case "gl":
		return game.RunDesktop(ctx, s, log)
	case "term":
		return term.Run(ctx, s, log)
	}
	return fmt.Errorf("unknown host %q (want gl or term)", s.Host)
}

// headless builds the full city, waits for every model and steps the world.
func headless(ctx context.Context, s config.Settings, log zerolog.Logger, frames int, drive bool) error {
	assets := &city.ProceduralLoader{
		Latency:  s.Loader.Latency,
		FailRate: s.Loader.FailRate,
		Seed:     s.Seed,
	}
	sim := city.NewSim(ctx, assets, s.Tuning, s.Seed, log)
	sim.Settle()

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var in city.FrameInput
		if drive {
			in.Toggle = i == 0
			in.Intent.Forward = i > 0
		}
		sim.Tick(in)
	}

	w := sim.World
	t := w.Target()
	fmt.Printf("frames=%d mode=%s x=%.3f y=%.3f z=%.3f yaw=%.3f surfaces=%d\n",
		w.Frame, w.Player.Mode, t.Position.X(), t.Position.Y(), t.Position.Z(), t.Yaw, w.Index.Len())
	return nil
}
