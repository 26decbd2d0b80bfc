//go:build !android

package game

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"citywalk/internal/city"
)

const windowTitle = "citywalk"

func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// syncViewport pushes the current window and framebuffer size into the
// camera. The pixel ratio is framebuffer pixels per window unit.
func syncViewport(window *glfw.Window, cam *city.ChaseCamera) {
	winW, winH := window.GetSize()
	fbW, _ := window.GetFramebufferSize()
	if winW <= 0 || winH <= 0 {
		return
	}
	cam.Resize(winW, winH, float64(fbW)/float64(winW))
}
