package city_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"citywalk/internal/city"
	"citywalk/internal/city/mocks"
)

func TestBuilder_FailedLoadsBecomeFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetLoader(ctrl)
	procedural := &city.ProceduralLoader{}
	assets.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*city.Node, error) {
			if strings.HasPrefix(id, "building-") {
				return nil, city.ErrLoadFailed
			}
			return procedural.Load(ctx, id)
		}).AnyTimes()

	s := city.NewSim(context.Background(), assets, city.DefaultTuning(), 1, zerolog.Nop())
	fallbacks := 0
	s.World.Events.Subscribe(city.EventNodeReady, func(e city.Event) {
		if e.Fallback {
			fallbacks++
		}
	})
	s.Settle()

	buildings := len(city.StreetOffsets) * len(city.BuildingModels)
	assert.Equal(t, buildings, fallbacks)
	// One box per fallback building, plus the ground.
	assert.Equal(t, 1+buildings, s.World.Index.Len())
	assert.Zero(t, s.Builder.Pending())
}

func TestBuilder_FallbackStillCollides(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetLoader(ctrl)
	assets.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, city.ErrUnknownModel).AnyTimes()

	s := city.NewSim(context.Background(), assets, city.DefaultTuning(), 5, zerolog.Nop())
	s.Settle()

	for _, v := range s.World.Vehicles {
		require.NotNil(t, v.Node)
		assert.Equal(t, "fallback", v.Node.Children[0].Name)
	}

	var tallest float64
	for _, sf := range s.World.Index.Surfaces() {
		if sf.Name() == "ground" {
			continue
		}
		assert.True(t, strings.HasSuffix(sf.Name(), "/fallback"), sf.Name())
		tallest = max(tallest, sf.Bounds().Max.Y())
	}
	assert.Greater(t, tallest, 20*1.2)
}

func TestBuilder_PumpAppliesOnlyFinishedLoads(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetLoader(ctrl)
	release := make(chan struct{})
	procedural := &city.ProceduralLoader{}
	assets.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*city.Node, error) {
			if id == city.AvatarModel {
				<-release
			}
			return procedural.Load(ctx, id)
		}).AnyTimes()

	s := city.NewSim(context.Background(), assets, city.DefaultTuning(), 9, zerolog.Nop())
	for s.Loader.InFlight() > 1 {
		s.Tick(city.FrameInput{})
	}
	s.Builder.Pump()
	assert.Equal(t, 1, s.Builder.Pending())
	assert.Empty(t, s.World.Player.Node.Children)

	close(release)
	s.Settle()
	assert.Zero(t, s.Builder.Pending())
	assert.Len(t, s.World.Player.Node.Children, 1)
}
