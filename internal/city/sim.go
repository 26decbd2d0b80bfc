package city

import (
	"context"

	"github.com/rs/zerolog"
)

// Sim bundles a world with the builder and loader that populate it.
type Sim struct {
	World   *World
	Builder *Builder
	Loader  *AsyncLoader
}

// NewSim creates the world and issues the city layout. Models arrive over
// the following frames.
func NewSim(ctx context.Context, assets AssetLoader, t Tuning, seed uint64, log zerolog.Logger) *Sim {
	w := NewWorld(t, log)
	l := NewAsyncLoader(ctx, assets)
	b := NewBuilder(w, l, seed, log)
	b.Build()
	return &Sim{World: w, Builder: b, Loader: l}
}

// Tick attaches finished loads, then runs one world update.
func (s *Sim) Tick(in FrameInput) {
	s.Builder.Pump()
	s.World.Update(in)
}

// Settle blocks until every load has completed and attaches them.
func (s *Sim) Settle() {
	s.Loader.Wait()
	s.Builder.Pump()
}
