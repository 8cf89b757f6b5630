package physics

// Params holds the tunables of the movement and collision resolver.
// Distances are world units, velocities units per second.
type Params struct {
	Gravity      float64 // Vertical acceleration, negative is down
	JumpStrength float64 // Upward velocity set by a jump
	MoveSpeed    float64 // Horizontal speed while input is held

	CrouchSpeedFactor float64 // Speed multiplier while crouched
	Damping           float64 // Per-tick horizontal decay with no input
	StopEpsilon       float64 // Horizontal speed snapped to zero below this

	StandingHeight float64
	CrouchHeight   float64
	Width          float64

	GroundMargin     float64 // Added to half height for the ground threshold
	StandMargin      float64 // Added to the height delta for the stand-up probe
	StandProbeOffset float64 // Stand-up ray starts this far above the crouched top

	FloorY float64 // Below this the player has fallen out of the level
}

// DefaultParams returns the platformer tuning.
func DefaultParams() Params {
	return Params{
		Gravity:           -19.62,
		JumpStrength:      8,
		MoveSpeed:         6,
		CrouchSpeedFactor: 0.5,
		Damping:           0.92,
		StopEpsilon:       0.01,
		StandingHeight:    1.0,
		CrouchHeight:      0.5,
		Width:             1.0,
		GroundMargin:      0.1,
		StandMargin:       0.05,
		StandProbeOffset:  0.01,
		FloorY:            -20,
	}
}

// MaxJumpHeight returns the apex height gained by a jump from rest.
func (p Params) MaxJumpHeight() float64 {
	if p.Gravity >= 0 {
		return 0
	}
	return p.JumpStrength * p.JumpStrength / (2 * -p.Gravity)
}

// RunnerParams holds the runner's forward and lane tunables.
type RunnerParams struct {
	Lanes        []float64 // Lane x-offsets, left to right
	StartSpeed   float64   // Forward units per 60Hz frame
	Acceleration float64   // Speed gained per 60Hz frame
	LaneLerp     float64   // Per-tick lateral interpolation factor
}

// DefaultRunnerParams returns the three-lane runner tuning.
func DefaultRunnerParams() RunnerParams {
	const laneWidth = 3.0
	return RunnerParams{
		Lanes:        []float64{-laneWidth, 0, laneWidth},
		StartSpeed:   0.15,
		Acceleration: 0.0001,
		LaneLerp:     0.1,
	}
}

// CenterLane returns the index of the middle lane.
func (r RunnerParams) CenterLane() int {
	return len(r.Lanes) / 2
}
