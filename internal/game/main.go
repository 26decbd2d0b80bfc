//go:build !android

package game

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"citywalk/internal/city"
	"citywalk/internal/config"
)

// RunDesktop opens a window and runs the city until it is closed or Escape
// is pressed. It must be called from the main goroutine.
func RunDesktop(ctx context.Context, s config.Settings, log zerolog.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow(s.Window.Width, s.Window.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("opengl ready")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	assets := &city.ProceduralLoader{
		Latency:  s.Loader.Latency,
		FailRate: s.Loader.FailRate,
		Seed:     s.Seed,
	}
	sim := city.NewSim(ctx, assets, s.Tuning, s.Seed, log)

	if s.Audio.Enabled {
		audio, err := NewAudioSystem(s.Audio.Volume)
		if err != nil {
			log.Warn().Err(err).Msg("audio init failed (continuing without sound)")
		} else {
			audio.Attach(sim.World.Events)
			defer audio.Close()
		}
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	cam := sim.World.Camera
	syncViewport(window, cam)
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		syncViewport(w, cam)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		syncViewport(w, cam)
	})

	input := NewInput()
	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		sim.Tick(input.Sample(window))

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.Draw(sim.World, fbW, fbH)
		window.SwapBuffers()
	}

	log.Info().Uint64("frames", sim.World.Frame).Int("drawCalls", rend.DrawCalls()).Msg("window closed")
	return nil
}
