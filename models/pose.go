package models

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/encoding/json"
)

// The smallest quaternion length accepted by Correct.
const minRotationLength = 1e-12

// Pose is a position and an orientation expressed in a parent reference
// frame.
type Pose struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{
		Rot: mgl64.QuatIdent(),
	}
}

// NewPose returns a pose at the given position with the given orientation.
func NewPose(x, y, z float64, rot mgl64.Quat) Pose {
	return Pose{
		Pos: mgl64.Vec3{x, y, z},
		Rot: rot,
	}
}

// Add composes p, expressed in the frame of parent, with parent. The result
// is expressed in the frame parent is expressed in. p is applied first:
//
//	rot = parent.Rot * p.Rot
//	pos = parent.Pos + parent.Rot.Rotate(p.Pos)
func (p Pose) Add(parent Pose) Pose {
	return Pose{
		Pos: parent.Pos.Add(parent.Rot.Rotate(p.Pos)),
		Rot: parent.Rot.Mul(p.Rot),
	}
}

// Sub returns the pose r such that r.Add(parent) equals p.
func (p Pose) Sub(parent Pose) Pose {
	inv := parent.Rot.Inverse()

	return Pose{
		Pos: inv.Rotate(p.Pos.Sub(parent.Pos)),
		Rot: inv.Mul(p.Rot),
	}
}

// Correct returns p with a unit orientation whose scalar part is positive.
// An error is returned when p contains non-finite values or when its
// orientation is too close to zero to be normalized.
func (p Pose) Correct() (Pose, error) {
	for _, v := range p.Pos {
		if !isFinite(v) {
			return p, newDegeneratePoseError(p)
		}
	}

	q := p.Rot
	if !isFinite(q.W) || !isFinite(q.V[0]) || !isFinite(q.V[1]) || !isFinite(q.V[2]) {
		return p, newDegeneratePoseError(p)
	}

	length := q.Len()
	if length < minRotationLength {
		return p, newDegeneratePoseError(p)
	}

	q = mgl64.Quat{W: q.W / length, V: q.V.Mul(1 / length)}
	if q.W < 0 {
		q = mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}
	}

	return Pose{Pos: p.Pos, Rot: q}, nil
}

// EqualWithEpsilon reports whether p and o describe the same pose within
// epsilon. Opposite quaternions describe the same orientation and are
// considered equal.
func (p Pose) EqualWithEpsilon(o Pose, epsilon float64) bool {
	for i := range p.Pos {
		if math.Abs(p.Pos[i]-o.Pos[i]) > epsilon {
			return false
		}
	}

	return quatEqualWithEpsilon(p.Rot, o.Rot, epsilon) ||
		quatEqualWithEpsilon(p.Rot, mgl64.Quat{W: -o.Rot.W, V: o.Rot.V.Mul(-1)}, epsilon)
}

func (p Pose) String() string {
	return fmt.Sprintf("pos(%g %g %g) rot(%g %g %g %g)",
		p.Pos[0], p.Pos[1], p.Pos[2],
		p.Rot.W, p.Rot.V[0], p.Rot.V[1], p.Rot.V[2],
	)
}

type poseJSON struct {
	PX float64 `json:"px"`
	PY float64 `json:"py"`
	PZ float64 `json:"pz"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
	RZ float64 `json:"rz"`
	RW float64 `json:"rw"`
}

func (p Pose) MarshalJSON() ([]byte, error) {
	return json.Marshal(poseJSON{
		PX: p.Pos[0],
		PY: p.Pos[1],
		PZ: p.Pos[2],
		RX: p.Rot.V[0],
		RY: p.Rot.V[1],
		RZ: p.Rot.V[2],
		RW: p.Rot.W,
	})
}

func (p *Pose) UnmarshalJSON(b []byte) error {
	var v poseJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	p.Pos = mgl64.Vec3{v.PX, v.PY, v.PZ}
	p.Rot = mgl64.Quat{W: v.RW, V: mgl64.Vec3{v.RX, v.RY, v.RZ}}
	return nil
}

func quatEqualWithEpsilon(a, b mgl64.Quat, epsilon float64) bool {
	return math.Abs(a.W-b.W) <= epsilon &&
		math.Abs(a.V[0]-b.V[0]) <= epsilon &&
		math.Abs(a.V[1]-b.V[1]) <= epsilon &&
		math.Abs(a.V[2]-b.V[2]) <= epsilon
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
