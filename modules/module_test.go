package modules

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/posegraph/models"
	"github.com/stretchr/testify/require"
)

type testModule struct {
	name    string
	initErr error
	updates int
	closed  bool
}

func (m *testModule) Name() string {
	return m.name
}

func (m *testModule) Init(*models.World) error {
	return m.initErr
}

func (m *testModule) Update() {
	m.updates++
}

func (m *testModule) Close() {
	m.closed = true
}

func newTestWorld(t *testing.T) *models.World {
	w := models.NewWorld(1, models.WorldConfig{RunState: models.RunStateRunning})
	t.Cleanup(w.Close)
	return w
}

func TestStart(t *testing.T) {
	t.Run("modules are updated at each frame", func(t *testing.T) {
		w := newTestWorld(t)
		a := &testModule{name: "a"}
		b := &testModule{name: "b"}

		stop, err := Start(w, a, b)
		require.NoError(t, err)

		w.DispatchFrame()
		w.DispatchFrame()
		require.Equal(t, 2, a.updates)
		require.Equal(t, 2, b.updates)

		stop()
		w.DispatchFrame()
		require.Equal(t, 2, a.updates)
		require.True(t, a.closed)
		require.True(t, b.closed)
	})

	t.Run("init failure stops started modules", func(t *testing.T) {
		w := newTestWorld(t)
		a := &testModule{name: "a"}
		b := &testModule{name: "b", initErr: errors.New("test")}
		c := &testModule{name: "c"}

		stop, err := Start(w, a, b, c)
		require.Error(t, err)
		require.Nil(t, stop)
		require.True(t, a.closed)
		require.False(t, c.closed)

		w.DispatchFrame()
		require.Zero(t, a.updates)
		require.Zero(t, c.updates)
	})
}
