package models

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestIdentityPose(t *testing.T) {
	p := IdentityPose()
	require.Equal(t, mgl64.Vec3{}, p.Pos)
	require.Equal(t, mgl64.QuatIdent(), p.Rot)
}

func TestPoseAdd(t *testing.T) {
	t.Run("translations add up", func(t *testing.T) {
		requirePoseEqual(t, position(1, 1, 0), position(0, 1, 0).Add(position(1, 0, 0)))
	})

	t.Run("child position is rotated by the parent", func(t *testing.T) {
		quarterTurn := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
		parent := NewPose(1, 0, 0, quarterTurn)

		world := position(1, 0, 0).Add(parent)
		requirePoseEqual(t, NewPose(1, 1, 0, quarterTurn), world)
	})

	t.Run("rotations compose", func(t *testing.T) {
		quarterTurn := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
		halfTurn := mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 0, 1})

		world := NewPose(0, 0, 0, quarterTurn).Add(NewPose(0, 0, 0, quarterTurn))
		requirePoseEqual(t, NewPose(0, 0, 0, halfTurn), world)
	})

	t.Run("composition is associative", func(t *testing.T) {
		a := NewPose(1, 2, 3, mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0}))
		b := NewPose(-2, 0.5, 1, mgl64.QuatRotate(1.1, mgl64.Vec3{0, 1, 0}))
		c := NewPose(4, -1, 0, mgl64.QuatRotate(-0.7, mgl64.Vec3{0, 0, 1}))

		requirePoseEqual(t, a.Add(b).Add(c), a.Add(b.Add(c)))
	})
}

func TestPoseSub(t *testing.T) {
	parent := NewPose(3, -1, 2, mgl64.QuatRotate(0.8, mgl64.Vec3{0, 1, 1}.Normalize()))
	p := NewPose(-1, 4, 0.5, mgl64.QuatRotate(-1.3, mgl64.Vec3{1, 0, 0}))

	t.Run("sub inverts add", func(t *testing.T) {
		requirePoseEqual(t, p, p.Add(parent).Sub(parent))
	})

	t.Run("add inverts sub", func(t *testing.T) {
		requirePoseEqual(t, p, p.Sub(parent).Add(parent))
	})
}

func TestPoseCorrect(t *testing.T) {
	t.Run("orientation is normalized", func(t *testing.T) {
		p, err := NewPose(1, 2, 3, mgl64.Quat{W: 2}).Correct()
		require.NoError(t, err)
		require.Equal(t, mgl64.Vec3{1, 2, 3}, p.Pos)
		require.InDelta(t, 1, p.Rot.W, testEpsilon)
		require.InDelta(t, 1, p.Rot.Len(), testEpsilon)
	})

	t.Run("scalar part is made positive", func(t *testing.T) {
		p, err := NewPose(0, 0, 0, mgl64.Quat{W: -0.5, V: mgl64.Vec3{0, 0, 0.5}}).Correct()
		require.NoError(t, err)
		require.Greater(t, p.Rot.W, 0.0)
		require.InDelta(t, -math.Sqrt2/2, p.Rot.V[2], testEpsilon)
	})

	t.Run("zero orientation is rejected", func(t *testing.T) {
		_, err := Pose{}.Correct()
		require.Error(t, err)
		require.Equal(t, ErrTypeDegeneratePose, errors.Type(err))
	})

	t.Run("non finite orientation is rejected", func(t *testing.T) {
		_, err := NewPose(0, 0, 0, mgl64.Quat{W: math.NaN()}).Correct()
		require.Error(t, err)
		require.Equal(t, ErrTypeDegeneratePose, errors.Type(err))
	})

	t.Run("non finite position is rejected", func(t *testing.T) {
		_, err := NewPose(math.Inf(1), 0, 0, mgl64.QuatIdent()).Correct()
		require.Error(t, err)
		require.Equal(t, ErrTypeDegeneratePose, errors.Type(err))
	})
}

func TestPoseEqualWithEpsilon(t *testing.T) {
	p := NewPose(1, 2, 3, mgl64.QuatRotate(0.5, mgl64.Vec3{0, 0, 1}))
	opposite := Pose{Pos: p.Pos, Rot: mgl64.Quat{W: -p.Rot.W, V: p.Rot.V.Mul(-1)}}

	require.True(t, p.EqualWithEpsilon(p, 0))
	require.True(t, p.EqualWithEpsilon(opposite, testEpsilon))
	require.False(t, p.EqualWithEpsilon(position(1, 2, 3), testEpsilon))
	require.False(t, p.EqualWithEpsilon(Pose{Pos: mgl64.Vec3{1, 2, 3.1}, Rot: p.Rot}, 0.01))
}

func TestPoseMarshalJSON(t *testing.T) {
	b, err := NewPose(1, 2, 3, mgl64.QuatIdent()).MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"px":1,"py":2,"pz":3,"rx":0,"ry":0,"rz":0,"rw":1}`, string(b))
}
