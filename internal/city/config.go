package city

// Probe offsets and margins (world units).
const (
	GroundProbeLift  = 10.0
	VehicleClearance = 0.5
	WallProbeLift    = 3.0
	WallMargin       = 4.0
)

// Vertical motion (units/frame, units/frame^2).
const (
	AscendRate   = 2.0
	Gravity      = 0.2
	TerminalFall = -4.0
)

// Horizontal motion.
const (
	WalkSpeed  = 1.5
	DriveSpeed = 3.5
	TurnRate   = 0.06 // rad/frame
)

// Vehicle boarding.
const (
	BoardRadius     = 35.0
	DisembarkOffset = 15.0 // along world +X
)

// Chase camera.
const (
	CamWalkHeight    = 7.0
	CamWalkDistance  = 20.0
	CamDriveHeight   = 12.0
	CamDriveDistance = 35.0
	CamSmoothing     = 0.15
	LookAtLift       = 5.0

	CamFovY       = 75.0 // degrees
	CamNear       = 0.1
	CamFar        = 10000.0
	MaxPixelRatio = 2.0
)

// Spatial index.
const (
	QuadCapacity   = 16
	QuadMaxDepth   = 8
	IndexHalfWidth = 2048.0
)

// Tuning is the runtime-adjustable copy of the movement and camera constants.
type Tuning struct {
	GroundProbeLift  float64 `mapstructure:"groundProbeLift"`
	VehicleClearance float64 `mapstructure:"vehicleClearance"`
	WallProbeLift    float64 `mapstructure:"wallProbeLift"`
	WallMargin       float64 `mapstructure:"wallMargin"`

	AscendRate   float64 `mapstructure:"ascendRate"`
	Gravity      float64 `mapstructure:"gravity"`
	TerminalFall float64 `mapstructure:"terminalFall"`

	WalkSpeed  float64 `mapstructure:"walkSpeed"`
	DriveSpeed float64 `mapstructure:"driveSpeed"`
	TurnRate   float64 `mapstructure:"turnRate"`

	BoardRadius     float64 `mapstructure:"boardRadius"`
	DisembarkOffset float64 `mapstructure:"disembarkOffset"`

	CamWalkHeight    float64 `mapstructure:"camWalkHeight"`
	CamWalkDistance  float64 `mapstructure:"camWalkDistance"`
	CamDriveHeight   float64 `mapstructure:"camDriveHeight"`
	CamDriveDistance float64 `mapstructure:"camDriveDistance"`
	CamSmoothing     float64 `mapstructure:"camSmoothing"`
	LookAtLift       float64 `mapstructure:"lookAtLift"`
}

func DefaultTuning() Tuning {
	return Tuning{
		GroundProbeLift:  GroundProbeLift,
		VehicleClearance: VehicleClearance,
		WallProbeLift:    WallProbeLift,
		WallMargin:       WallMargin,
		AscendRate:       AscendRate,
		Gravity:          Gravity,
		TerminalFall:     TerminalFall,
		WalkSpeed:        WalkSpeed,
		DriveSpeed:       DriveSpeed,
		TurnRate:         TurnRate,
		BoardRadius:      BoardRadius,
		DisembarkOffset:  DisembarkOffset,
		CamWalkHeight:    CamWalkHeight,
		CamWalkDistance:  CamWalkDistance,
		CamDriveHeight:   CamDriveHeight,
		CamDriveDistance: CamDriveDistance,
		CamSmoothing:     CamSmoothing,
		LookAtLift:       LookAtLift,
	}
}

// Speed returns the per-frame horizontal speed for the given mode.
func (t Tuning) Speed(mounted bool) float64 {
	if mounted {
		return t.DriveSpeed
	}
	return t.WalkSpeed
}
