// Package smoketest runs a self check of the entity tree against a scratch
// world backed by the real physics registry and visual scene.
package smoketest

import (
	"net/http"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	posehttp "github.com/aukilabs/posegraph/http"
	"github.com/aukilabs/posegraph/models"
	"github.com/aukilabs/posegraph/physics"
	"github.com/aukilabs/posegraph/visual"
	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

type Results struct {
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
	Checks   []Check       `json:"checks"`
}

type scene struct {
	world   *models.World
	physics *physics.Engine
	visuals *visual.Scene
}

func newScene(s models.RunState) scene {
	var p physics.Engine
	var v visual.Scene

	w := models.NewWorld(0, models.WorldConfig{
		Physics:       &p,
		Visuals:       &v,
		RenderEnabled: true,
		RunState:      s,
	})

	return scene{
		world:   w,
		physics: &p,
		visuals: &v,
	}
}

// close destroys the scene entities so that they leave the process metrics,
// then stops the world.
func (s scene) close() {
	s.world.RemoveAll()
	s.world.Close()
}

var checks = []struct {
	name string
	run  func() error
}{
	{name: "composition", run: checkComposition},
	{name: "round_trip", run: checkRoundTrip},
	{name: "canonical_body", run: checkCanonicalBody},
	{name: "static_propagation", run: checkStaticPropagation},
	{name: "deferred_visual", run: checkDeferredVisual},
}

// Run runs every check and returns the results.
func Run() Results {
	start := time.Now()
	res := Results{Passed: true}

	for _, c := range checks {
		check := Check{Name: c.name, Passed: true}

		if err := c.run(); err != nil {
			check.Passed = false
			check.Error = err.Error()
			res.Passed = false

			logs.WithTag("check", c.name).Warn(err)
		}
		res.Checks = append(res.Checks, check)
	}

	res.Duration = time.Since(start)
	return res
}

// HandleSmokeTest runs the checks and writes the results as JSON.
func HandleSmokeTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := Run()

		statusCode := http.StatusOK
		if !res.Passed {
			statusCode = http.StatusInternalServerError
		}
		posehttp.WriteJSON(w, statusCode, res)
	}
}

func position(x, y, z float64) models.Pose {
	return models.NewPose(x, y, z, mgl64.QuatIdent())
}

func expectPose(name string, expected, actual models.Pose) error {
	if expected.EqualWithEpsilon(actual, epsilon) {
		return nil
	}

	return errors.New("unexpected pose").
		WithTag("pose", name).
		WithTag("expected", expected.String()).
		WithTag("actual", actual.String())
}

func checkComposition() error {
	s := newScene(models.RunStatePaused)
	defer s.close()

	root, err := s.world.NewEntity(nil, models.KindModel)
	if err != nil {
		return err
	}
	child, err := s.world.NewEntity(root, models.KindEntity)
	if err != nil {
		return err
	}
	grandchild, err := s.world.NewEntity(child, models.KindEntity)
	if err != nil {
		return err
	}

	if err := child.SetRelativePose(position(1, 0, 0), false); err != nil {
		return err
	}
	if err := grandchild.SetRelativePose(position(0, 1, 0), false); err != nil {
		return err
	}
	return expectPose("grandchild", position(1, 1, 0), grandchild.WorldPose())
}

func checkRoundTrip() error {
	s := newScene(models.RunStatePaused)
	defer s.close()

	root, err := s.world.NewEntity(nil, models.KindModel)
	if err != nil {
		return err
	}
	body, err := s.world.NewEntity(root, models.KindBody)
	if err != nil {
		return err
	}

	rootPose := models.NewPose(2, -1, 0.5, mgl64.QuatRotate(0.6, mgl64.Vec3{0, 0, 1}))
	if err := root.SetRelativePose(rootPose, false); err != nil {
		return err
	}

	target := models.NewPose(-3, 4, 1, mgl64.QuatRotate(1.4, mgl64.Vec3{1, 0, 0}))
	if err := body.SetWorldPose(target, true); err != nil {
		return err
	}
	return expectPose("body", target, body.WorldPose())
}

func checkCanonicalBody() error {
	s := newScene(models.RunStatePaused)
	defer s.close()

	model, err := s.world.NewEntity(nil, models.KindModel)
	if err != nil {
		return err
	}
	body, err := s.world.NewEntity(model, models.KindBody)
	if err != nil {
		return err
	}
	if err := model.SetCanonicalBody(body); err != nil {
		return err
	}
	if err := body.SetRelativePose(position(1, 0, 0), false); err != nil {
		return err
	}

	if err := body.SetWorldPose(position(5, 0, 0), true); err != nil {
		return err
	}
	if err := expectPose("model", position(4, 0, 0), model.WorldPose()); err != nil {
		return err
	}
	return expectPose("body", position(5, 0, 0), body.WorldPose())
}

func checkStaticPropagation() error {
	s := newScene(models.RunStateRunning)
	defer s.close()

	root, err := s.world.NewEntity(nil, models.KindModel)
	if err != nil {
		return err
	}

	parent := root
	var bodies []*models.Entity
	for i := 0; i < 3; i++ {
		body, err := s.world.NewEntity(parent, models.KindBody)
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
		parent = body
	}

	bodies[0].SetStatic(true)
	for _, b := range bodies {
		if !b.IsStatic() {
			return errors.New("body is not static").WithTag("entity_id", b.ID)
		}
	}

	for _, b := range bodies[1:] {
		if s.physics.IsEnabled(b.ID) {
			return errors.New("static body is still simulated").WithTag("entity_id", b.ID)
		}
	}
	return nil
}

func checkDeferredVisual() error {
	s := newScene(models.RunStateRunning)
	defer s.close()

	e, err := s.world.NewEntity(nil, models.KindModel)
	if err != nil {
		return err
	}
	if err := e.SetRelativePose(position(1, 2, 3), false); err != nil {
		return err
	}

	n, ok := e.Visual().(*visual.Node)
	if !ok {
		return errors.New("entity has no visual node")
	}
	if !n.IsDirty() {
		return errors.New("visual is not dirty")
	}
	if err := expectPose("visual before render", models.IdentityPose(), n.Pose()); err != nil {
		return err
	}

	s.visuals.Update()
	return expectPose("visual after render", position(1, 2, 3), n.Pose())
}
