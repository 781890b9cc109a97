package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the fixed up axis. Poses never roll around the view direction.
var WorldUp = mgl64.Vec3{0, 1, 0}

// DefaultPitchLimit is the pitch bound in degrees used when none is configured.
const DefaultPitchLimit = 89.0

const epsilon = 1e-9

// Pose is a camera position plus yaw/pitch in radians. The zero orientation
// looks down -Z. Positive yaw turns right, positive pitch looks up.
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// LookAt builds a pose at position facing target. up resolves the yaw when
// the target is straight above or below; the zero vector means WorldUp.
// Pitch is clamped to DefaultPitchLimit.
func LookAt(position, target, up mgl64.Vec3) Pose {
	pose := Pose{Position: position}

	dir := target.Sub(position)
	if dir.Len() < epsilon {
		return pose
	}
	dir = dir.Normalize()
	if up.Len() < epsilon {
		up = WorldUp
	}

	horizontal := math.Hypot(dir.X(), dir.Z())
	switch {
	case horizontal > 1e-6:
		pose.Yaw = math.Atan2(dir.X(), -dir.Z())
	case dir.Y() < 0:
		// Looking down: the top of the screen points along the up hint.
		if math.Hypot(up.X(), up.Z()) > 1e-6 {
			pose.Yaw = math.Atan2(up.X(), -up.Z())
		}
	default:
		if math.Hypot(up.X(), up.Z()) > 1e-6 {
			pose.Yaw = math.Atan2(-up.X(), up.Z())
		}
	}
	pose.Pitch = math.Asin(mgl64.Clamp(dir.Y(), -1, 1))
	pose.Pitch = clampPitch(pose.Pitch, DefaultPitchLimit)
	return pose
}

// Forward is the unit view direction.
func (p Pose) Forward() mgl64.Vec3 {
	cp := math.Cos(p.Pitch)
	return mgl64.Vec3{
		math.Sin(p.Yaw) * cp,
		math.Sin(p.Pitch),
		-math.Cos(p.Yaw) * cp,
	}
}

// Right is the unit vector to the camera's right. It is always horizontal.
func (p Pose) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(p.Yaw), 0, math.Sin(p.Yaw)}
}

// Up is the camera's local up vector.
func (p Pose) Up() mgl64.Vec3 {
	return p.Right().Cross(p.Forward())
}

// Orientation returns the rotation taking -Z onto Forward.
func (p Pose) Orientation() mgl64.Quat {
	yaw := mgl64.QuatRotate(-p.Yaw, WorldUp)
	pitch := mgl64.QuatRotate(p.Pitch, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// View is the world-to-camera matrix.
func (p Pose) View() mgl64.Mat4 {
	return mgl64.LookAtV(p.Position, p.Position.Add(p.Forward()), WorldUp)
}

func clampPitch(pitch, limitDeg float64) float64 {
	if !(limitDeg > 0 && limitDeg < 90) {
		limitDeg = DefaultPitchLimit
	}
	limit := mgl64.DegToRad(limitDeg)
	return mgl64.Clamp(pitch, -limit, limit)
}
