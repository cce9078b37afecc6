package runtime

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Initial turtle frame. Heading points along world up (+Y), the turtle's own up vector
// along +Z and right along +X, so right = heading x up and the frame is right-handed.
var (
	InitialHeading = r3.Vec{X: 0, Y: 1, Z: 0}
	InitialUp      = r3.Vec{X: 0, Y: 0, Z: 1}
	InitialRight   = r3.Vec{X: 1, Y: 0, Z: 0}
)

// Turtle is the cursor walked over an expanded sequence.
type Turtle struct {
	Position r3.Vec
	Heading  r3.Vec
	Up       r3.Vec
	Right    r3.Vec
	Step     float64
	Angle    float64 // degrees
}

// NewTurtle returns a turtle at the origin with the initial frame.
func NewTurtle(step, angle float64) Turtle {
	return Turtle{
		Heading: InitialHeading,
		Up:      InitialUp,
		Right:   InitialRight,
		Step:    step,
		Angle:   angle,
	}
}

// Forward moves the turtle by distance along its heading and returns the new position.
func (t *Turtle) Forward(distance float64) r3.Vec {
	t.Position = r3.Add(t.Position, r3.Scale(distance, t.Heading))
	return t.Position
}

// Yaw rotates heading and right about the up axis. Positive degrees turn left.
func (t *Turtle) Yaw(degrees float64) {
	rot := r3.NewRotation(radians(degrees), t.Up)
	t.Heading = rot.Rotate(t.Heading)
	t.Right = rot.Rotate(t.Right)
	t.orthonormalize()
}

// Pitch rotates heading and up about the right axis. Positive degrees pitch up.
func (t *Turtle) Pitch(degrees float64) {
	rot := r3.NewRotation(radians(degrees), t.Right)
	t.Heading = rot.Rotate(t.Heading)
	t.Up = rot.Rotate(t.Up)
	t.orthonormalize()
}

// Roll rotates up and right about the heading axis. Positive degrees roll left.
func (t *Turtle) Roll(degrees float64) {
	rot := r3.NewRotation(radians(degrees), t.Heading)
	t.Up = rot.Rotate(t.Up)
	t.Right = rot.Rotate(t.Right)
	t.orthonormalize()
}

// orthonormalize removes the drift accumulated by long rotation chains.
func (t *Turtle) orthonormalize() {
	t.Heading = r3.Unit(t.Heading)
	t.Right = r3.Unit(r3.Cross(t.Heading, t.Up))
	t.Up = r3.Cross(t.Right, t.Heading)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
