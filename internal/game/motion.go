package game

import (
	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
)

// MoveIntent is the directional input of one tick
type MoveIntent struct {
	Up, Down, Left, Right bool
}

// IntentFrom reads WASD from input
func IntentFrom(input render.InputManager) MoveIntent {
	return MoveIntent{
		Up:    input.IsKeyPressed(render.KeyW),
		Down:  input.IsKeyPressed(render.KeyS),
		Left:  input.IsKeyPressed(render.KeyA),
		Right: input.IsKeyPressed(render.KeyD),
	}
}

// Vector returns the unit direction of the intent, or zero without input.
// Opposite keys cancel.
func (m MoveIntent) Vector() shadows.Point {
	var v shadows.Point
	active := false

	if m.Left {
		v.X -= 1
		active = true
	}
	if m.Right {
		v.X += 1
		active = true
	}
	if m.Up {
		v.Y -= 1
		active = true
	}
	if m.Down {
		v.Y += 1
		active = true
	}

	if active {
		v = shadows.Normalize(v)
	}
	return v
}

// Pose is the viewer state carried between ticks
type Pose struct {
	Position  shadows.Point
	Velocity  shadows.Point
	Direction float32 // Radians, positive turns counter-clockwise on screen
}

// MotionConfig tunes the integrator
type MotionConfig struct {
	Run      float32 // Acceleration added per tick of input
	Friction float32 // Velocity retained per tick
	Reach    float32 // Length of the world forward axis used for the facing angle
}

// DefaultMotionConfig returns the reference tuning for a screen width
func DefaultMotionConfig(screenWidth int) MotionConfig {
	return MotionConfig{
		Run:      4,
		Friction: 0.75,
		Reach:    2 * float32(screenWidth),
	}
}

// Step advances pose by one tick: the intent accelerates, friction damps,
// the position integrates, and the viewer turns toward mouse.
func Step(intent MoveIntent, mouse shadows.Point, pose Pose, cfg MotionConfig) Pose {
	move := intent.Vector()

	pose.Velocity.X += move.X * cfg.Run
	pose.Velocity.Y += move.Y * cfg.Run

	pose.Velocity.X *= cfg.Friction
	pose.Velocity.Y *= cfg.Friction

	pose.Position.X += pose.Velocity.X
	pose.Position.Y += pose.Velocity.Y

	forward := shadows.Point{X: pose.Position.X + cfg.Reach, Y: pose.Position.Y}
	pose.Direction = shadows.PolarAngle(pose.Position, mouse, forward)
	return pose
}
