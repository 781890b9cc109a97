package camera

import "github.com/go-gl/mathgl/mgl64"

// Rig owns a camera pose. Advance is the only way the pose changes after
// Initialize.
type Rig struct {
	pose Pose
}

func NewRig() *Rig {
	return &Rig{}
}

// Initialize places the rig at position. With a nil target the rig faces -Z.
func (r *Rig) Initialize(position mgl64.Vec3, target *mgl64.Vec3, up mgl64.Vec3) {
	if target == nil {
		r.pose = Pose{Position: position}
		return
	}
	r.pose = LookAt(position, *target, up)
}

// CurrentPose returns a snapshot safe to hand to the renderer.
func (r *Rig) CurrentPose() Pose {
	if r == nil {
		return Pose{}
	}
	return r.pose
}

func (r *Rig) Advance(mode CaptureMode, in FrameInput, cfg MotionConfig) Pose {
	r.pose = Advance(r.pose, mode, in, cfg)
	return r.pose
}
