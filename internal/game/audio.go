package game

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"citywalk/internal/city"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// maxActiveCues caps overlapping one-shots.
	maxActiveCues = 3
)

// CueKind identifies a procedural sound effect.
type CueKind int

const (
	CueDoor CueKind = iota
	CueThud
	CueBump
)

// AudioSystem plays short procedural cues for world events.
type AudioSystem struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	cues   map[CueKind][]byte
	active atomic.Int32
}

// NewAudioSystem opens the output device and pre-renders every cue.
func NewAudioSystem(volume float64) (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	a := &AudioSystem{
		ctx:    ctx,
		ready:  ready,
		volume: clampUnit(volume),
		cues:   make(map[CueKind][]byte),
	}
	for _, k := range []CueKind{CueDoor, CueThud, CueBump} {
		a.cues[k] = generateCue(k)
	}
	return a, nil
}

// Attach subscribes the system to the events that have a cue.
func (a *AudioSystem) Attach(bus *city.EventBus) {
	bindCues(bus, a.Play)
}

func bindCues(bus *city.EventBus, play func(CueKind)) {
	door := func(city.Event) { play(CueDoor) }
	bus.Subscribe(city.EventBoarded, door)
	bus.Subscribe(city.EventDisembarked, door)
	bus.Subscribe(city.EventLanded, func(city.Event) { play(CueThud) })
	bus.Subscribe(city.EventWallBlocked, func(city.Event) { play(CueBump) })
}

// Play starts a cue and returns immediately. A nil system is silent.
func (a *AudioSystem) Play(kind CueKind) {
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := a.cues[kind]
	if len(samples) == 0 {
		return
	}
	if a.active.Add(1) > maxActiveCues {
		a.active.Add(-1)
		return
	}
	go func() {
		defer a.active.Add(-1)
		player := a.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Close suspends the device; cues still playing are cut off.
func (a *AudioSystem) Close() error {
	if a == nil {
		return nil
	}
	return a.ctx.Suspend()
}

// putStereoF32 writes sample to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	bits := math.Float32bits(float32(sample))
	binary.LittleEndian.PutUint32(buf[i*8:], bits)
	binary.LittleEndian.PutUint32(buf[i*8+4:], bits)
}

// softSat is a cubic soft clipper with a hyperbolic tail past |x| = 1.
func softSat(x float64) float64 {
	if math.Abs(x) <= 1 {
		return x - x*x*x/3
	}
	return math.Copysign(1-0.5/math.Abs(x), x)
}

// envelope is an ADSR shape whose stage lengths are fractions of the cue.
type envelope struct {
	attack, decay, sustain, release float64
}

func (e envelope) at(t float64) float64 {
	tail := 1 - e.release
	switch {
	case t < e.attack:
		return t / e.attack
	case t < e.attack+e.decay:
		return 1 - (1-e.sustain)*(t-e.attack)/e.decay
	case t < tail:
		return e.sustain
	default:
		return e.sustain * (1 - (t-tail)/e.release)
	}
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Cues ------------------------------------------------------------------

func generateCue(kind CueKind) []byte {
	switch kind {
	case CueDoor:
		return genDoor()
	case CueThud:
		return genThud()
	case CueBump:
		return genBump()
	}
	return nil
}

// genDoor is a latch click followed by a low body thunk.
func genDoor() []byte {
	n := int(SampleRate * 0.28)
	buf := makeBuf(n)
	seed := uint64(0xD00D)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		click := 0.0
		if t < 0.012 {
			click = lcg(&seed) * (1 - t/0.012)
		}
		lp += (lcg(&seed) - lp) * 0.08
		thunk := 0.0
		if t > 0.04 {
			tt := t - 0.04
			thunk = math.Sin(2*math.Pi*95*tt)*math.Exp(-tt*28) + lp*math.Exp(-tt*35)*0.6
		}
		env := envelope{0.01, 0.2, 0.7, 0.3}.at(p)
		putStereoF32(buf, i, softSat((click*0.5+thunk)*env)*0.8)
	}
	return buf
}

// genThud is a short falling sine with a puff of filtered noise.
func genThud() []byte {
	n := int(SampleRate * 0.22)
	buf := makeBuf(n)
	seed := uint64(0x7417D)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		f := 70 - 30*t/0.22
		lp += (lcg(&seed) - lp) * 0.05
		s := math.Sin(2*math.Pi*f*t)*math.Exp(-t*18) + lp*math.Exp(-t*40)*0.8
		putStereoF32(buf, i, softSat(s)*0.9)
	}
	return buf
}

var bumpEnv = envelope{0.02, 0.3, 0.3, 0.6}

// genBump is a dull knock for walking into a wall.
func genBump() []byte {
	n := int(SampleRate * 0.12)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		s := math.Sin(2*math.Pi*140*t) + 0.4*math.Sin(2*math.Pi*310*t)
		putStereoF32(buf, i, softSat(s*bumpEnv.at(p))*0.6)
	}
	return buf
}
