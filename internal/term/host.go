package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"citywalk/internal/city"
	"citywalk/internal/config"
)

// FrameInterval matches the desktop host's vsync rate.
const FrameInterval = 16 * time.Millisecond

// Run drives the city in the terminal until quit or ctx is done.
func Run(ctx context.Context, s config.Settings, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	assets := &city.ProceduralLoader{
		Latency:  s.Loader.Latency,
		FailRate: s.Loader.FailRate,
		Seed:     s.Seed,
	}
	sim := city.NewSim(ctx, assets, s.Tuning, s.Seed, log)

	cols, rows := screen.Size()
	sim.World.Camera.Resize(cols, rows, 1)

	events := make(chan tcell.Event, 100)
	go func() {
		// PollEvent returns nil once the screen is finalized.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	var keys holdState
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a, ok := keyAction(ev)
				if !ok {
					continue
				}
				if a == actQuit {
					log.Info().Uint64("frames", sim.World.Frame).Msg("terminal host quit")
					return nil
				}
				keys.press(a)
			case *tcell.EventResize:
				cols, rows = screen.Size()
				sim.World.Camera.Resize(cols, rows, 1)
				screen.Sync()
			}

		case <-ticker.C:
			sim.Tick(keys.frame())
			Blit(screen, Compose(sim.World, sim.Builder.Pending(), cols, rows))
			screen.Show()
		}
	}
}
