package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sensitivity is mouse-look speed in degrees per unit of mouse travel.
type Sensitivity struct {
	Horizontal float64
	Vertical   float64
}

// MotionConfig controls how FrameInput moves a pose.
type MotionConfig struct {
	Speed       float64 // units per second
	Sensitivity Sensitivity
	PitchLimit  float64 // degrees; zero means DefaultPitchLimit
}

// FrameInput is what a single frame contributes to the camera.
//
// Axis is expressed in the camera's local frame: +X right, +Y up, +Z back
// (the camera looks down -Z). MouseDelta is in look space: +X turns right,
// +Y looks up.
type FrameInput struct {
	Axis       mgl64.Vec3
	MouseDelta mgl64.Vec2
	Elapsed    float64 // seconds
}

// Advance integrates one frame of input. While Released it returns pose
// unchanged. Non-finite input components count as zero.
func Advance(pose Pose, mode CaptureMode, in FrameInput, cfg MotionConfig) Pose {
	if mode != Captured {
		return pose
	}

	if dYaw := mgl64.DegToRad(finiteOrZero(in.MouseDelta.X()) * cfg.Sensitivity.Horizontal); isFinite(dYaw) {
		pose.Yaw = wrapAngle(pose.Yaw + dYaw)
	}
	if dPitch := mgl64.DegToRad(finiteOrZero(in.MouseDelta.Y()) * cfg.Sensitivity.Vertical); isFinite(dPitch) {
		pose.Pitch += dPitch
	}
	pose.Pitch = clampPitch(pose.Pitch, cfg.PitchLimit)

	dt := finiteOrZero(in.Elapsed)
	if dt <= 0 {
		return pose
	}

	axis := mgl64.Vec3{
		mgl64.Clamp(finiteOrZero(in.Axis.X()), -1, 1),
		mgl64.Clamp(finiteOrZero(in.Axis.Y()), -1, 1),
		mgl64.Clamp(finiteOrZero(in.Axis.Z()), -1, 1),
	}
	dir := pose.Right().Mul(axis.X()).
		Add(pose.Up().Mul(axis.Y())).
		Sub(pose.Forward().Mul(axis.Z()))
	// Diagonal input must not move faster than a single axis.
	if l := dir.Len(); l > 1 {
		dir = dir.Mul(1 / l)
	}

	step := dir.Mul(cfg.Speed * dt)
	if !isFinite(step.X()) || !isFinite(step.Y()) || !isFinite(step.Z()) {
		return pose
	}
	pose.Position = pose.Position.Add(step)
	return pose
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

// wrapAngle maps a into [-pi, pi].
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
