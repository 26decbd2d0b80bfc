//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"citywalk/internal/city"
)

// Key bindings. Any key in a group activates the intent.
var (
	keysForward   = []glfw.Key{glfw.KeyW, glfw.KeyUp}
	keysBackward  = []glfw.Key{glfw.KeyS, glfw.KeyDown}
	keysTurnLeft  = []glfw.Key{glfw.KeyA, glfw.KeyLeft}
	keysTurnRight = []glfw.Key{glfw.KeyD, glfw.KeyRight}
	keysAscend    = []glfw.Key{glfw.KeySpace}
	keysToggle    = []glfw.Key{glfw.KeyE, glfw.KeyEnter}
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Sample reads the level intents and the toggle edge for this frame.
func (in *Input) Sample(window *glfw.Window) city.FrameInput {
	down := func(k glfw.Key) bool { return window.GetKey(k) == glfw.Press }
	fi := city.FrameInput{Intent: intentFromKeys(down)}
	// Every toggle key is polled so prevKeys stays current for all of them.
	for _, k := range keysToggle {
		if in.JustPressed(window, k) {
			fi.Toggle = true
		}
	}
	return fi
}

func intentFromKeys(down func(glfw.Key) bool) city.Intent {
	held := func(keys []glfw.Key) bool {
		for _, k := range keys {
			if down(k) {
				return true
			}
		}
		return false
	}
	return city.Intent{
		Forward:   held(keysForward),
		Backward:  held(keysBackward),
		TurnLeft:  held(keysTurnLeft),
		TurnRight: held(keysTurnRight),
		Ascend:    held(keysAscend),
	}
}
