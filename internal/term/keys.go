package term

import (
	"github.com/gdamore/tcell/v2"

	"citywalk/internal/city"
)

// HoldFrames is how long a movement key stays active after its last key
// event. Terminals report repeats but never releases; the window must span
// the gap between the first press and the first auto-repeat.
const HoldFrames = 30

type action uint8

const (
	actForward action = iota
	actBackward
	actTurnLeft
	actTurnRight
	actAscend
	actToggle
	actQuit
	numActions
)

// keyAction maps a key event to an action.
func keyAction(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBackward, true
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyEnter:
		return actToggle, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return actForward, true
		case 's', 'S':
			return actBackward, true
		case 'a', 'A':
			return actTurnLeft, true
		case 'd', 'D':
			return actTurnRight, true
		case ' ':
			return actAscend, true
		case 'e', 'E':
			return actToggle, true
		case 'q', 'Q':
			return actQuit, true
		}
	}
	return 0, false
}

// holdState turns discrete key events into level intents.
type holdState struct {
	left   [numActions]int
	toggle bool
}

// opposite pairs cancel: pressing one releases the other.
var opposite = map[action]action{
	actForward:   actBackward,
	actBackward:  actForward,
	actTurnLeft:  actTurnRight,
	actTurnRight: actTurnLeft,
}

func (h *holdState) press(a action) {
	if a == actToggle {
		h.toggle = true
		return
	}
	h.left[a] = HoldFrames
	if o, ok := opposite[a]; ok {
		h.left[o] = 0
	}
}

// frame returns this frame's input and ages every held key by one frame.
func (h *holdState) frame() city.FrameInput {
	in := city.FrameInput{
		Intent: city.Intent{
			Forward:   h.left[actForward] > 0,
			Backward:  h.left[actBackward] > 0,
			TurnLeft:  h.left[actTurnLeft] > 0,
			TurnRight: h.left[actTurnRight] > 0,
			Ascend:    h.left[actAscend] > 0,
		},
		Toggle: h.toggle,
	}
	h.toggle = false
	for i := range h.left {
		if h.left[i] > 0 {
			h.left[i]--
		}
	}
	return in
}
