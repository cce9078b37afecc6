package domain

// Defaults applied when a grammar does not set them explicitly.
const (
	// DefaultStep is the world-space length of one forward move.
	DefaultStep = 1.0
	// DefaultAngle is the turn increment in degrees.
	DefaultAngle = 22.5
	// DefaultWeight is the weight of a production that does not declare one.
	DefaultWeight = 1.0
)

// PracticalIterations is the expansion depth above which typical plant grammars become
// impractical. The engine never enforces it; callers use it to bound user input.
const PracticalIterations = 8
