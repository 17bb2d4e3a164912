package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// RunState is the run state of a world.
type RunState int

const (
	RunStateStopped RunState = iota
	RunStatePaused
	RunStateRunning
)

func (s RunState) String() string {
	switch s {
	case RunStateStopped:
		return "stopped"
	case RunStatePaused:
		return "paused"
	case RunStateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// ParseRunState returns the run state named by v.
func ParseRunState(v string) (RunState, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "stopped":
		return RunStateStopped, nil
	case "paused":
		return RunStatePaused, nil
	case "running":
		return RunStateRunning, nil
	default:
		return RunStateStopped, errors.New("unknown run state").WithTag("run_state", v)
	}
}

// WorldConfig holds the collaborators and the initial state of a world.
type WorldConfig struct {
	// The duration between each frame.
	FrameDuration time.Duration

	// The physics engine where entities are registered. Defaults to an engine
	// that does nothing.
	Physics PhysicsEngine

	// The factory that creates entity visuals. Entities don't get visuals
	// when nil.
	Visuals VisualFactory

	// Whether poses are forwarded to visuals.
	RenderEnabled bool

	// The initial run state.
	RunState RunState
}

// World owns a tree of entities and dispatches simulation frames.
type World struct {
	ID   uint32
	UUID string

	physics PhysicsEngine
	visuals VisualFactory

	stateMutex    sync.RWMutex
	runState      RunState
	renderEnabled bool

	entityIDs   SequentialIDGenerator
	entityMutex sync.RWMutex
	entities    map[uint32]*Entity

	startFrameOnce  sync.Once
	closeFrameChan  chan struct{}
	frameTicker     *time.Ticker
	frameHandlerIDs SequentialIDGenerator
	frameHandlers   map[uint32]func()
	frameMutex      sync.RWMutex

	closeOnce sync.Once
}

func NewWorld(id uint32, conf WorldConfig) *World {
	physics := conf.Physics
	if physics == nil {
		physics = noopPhysicsEngine{}
	}

	frameDuration := conf.FrameDuration
	if frameDuration <= 0 {
		frameDuration = time.Millisecond * 15
	}

	return &World{
		ID:             id,
		UUID:           uuid.New().String(),
		physics:        physics,
		visuals:        conf.Visuals,
		runState:       conf.RunState,
		renderEnabled:  conf.RenderEnabled,
		entities:       make(map[uint32]*Entity),
		closeFrameChan: make(chan struct{}, 1),
		frameTicker:    time.NewTicker(frameDuration),
		frameHandlers:  make(map[uint32]func()),
	}
}

func (w *World) Close() {
	w.closeOnce.Do(func() {
		w.frameTicker.Stop()
		w.closeFrameChan <- struct{}{}
	})
}

// RenderEnabled reports whether entity poses are forwarded to visuals.
func (w *World) RenderEnabled() bool {
	w.stateMutex.RLock()
	defer w.stateMutex.RUnlock()

	return w.renderEnabled && w.visuals != nil
}

func (w *World) RunState() RunState {
	w.stateMutex.RLock()
	defer w.stateMutex.RUnlock()

	return w.runState
}

func (w *World) SetRunState(s RunState) {
	w.stateMutex.Lock()
	prev := w.runState
	w.runState = s
	w.stateMutex.Unlock()

	if prev != s {
		logs.WithTag("world_id", w.ID).
			WithTag("world_uuid", w.UUID).
			WithTag("from", prev.String()).
			WithTag("to", s.String()).
			Info("world run state changed")
	}
}

// NewEntity creates an entity of the given kind under parent. parent is nil
// for a root entity.
//
// The entity starts at the identity pose and inherits the static flag of its
// parent.
func (w *World) NewEntity(parent *Entity, k Kind) (*Entity, error) {
	if parent != nil {
		if _, ok := w.EntityByID(parent.ID); !ok || parent.world != w {
			return nil, errors.New("parent does not belong to the world").
				WithType(ErrTypeUnknownParent).
				WithTag("world_id", w.ID).
				WithTag("parent_id", parent.ID)
		}
	}

	e := &Entity{
		ID:           w.entityIDs.New(),
		kind:         k,
		world:        w,
		relativePose: IdentityPose(),
		parent:       parent,
	}
	e.name = fmt.Sprintf("Entity_%d", e.ID)

	if parent != nil {
		e.static = parent.IsStatic()
	}

	if w.RenderEnabled() {
		var parentVisual Visual
		if parent != nil {
			parentVisual = parent.visual
		}
		e.visual = w.visuals.CreateVisual(visualName(e.name), parentVisual, e)
	}

	w.entityMutex.Lock()
	if parent != nil {
		parent.children = append(parent.children, e)
	}
	w.entities[e.ID] = e
	w.entityMutex.Unlock()

	w.physics.AddEntity(e)

	instrumentIncreaseEntityGauge(k)
	instrumentCountEntity(k)
	return e, nil
}

// RemoveEntity destroys an entity. The entity is unregistered from the
// physics engine, its visual is deleted and it is detached from its parent.
//
// Children are not destroyed. They become roots and their relative pose is
// from then on their world pose. Use RemoveSubtree to destroy an entity
// with all its descendants.
func (w *World) RemoveEntity(e *Entity) {
	w.entityMutex.Lock()
	defer w.entityMutex.Unlock()

	if _, ok := w.entities[e.ID]; !ok {
		return
	}

	if e.visual == nil {
		logs.WithTag("entity_id", e.ID).
			WithTag("world_id", w.ID).
			Debug("removing entity without visual")
	}

	e.destroy()
	delete(w.entities, e.ID)

	instrumentDecreaseEntityGauge(e.kind)
}

// RemoveSubtree destroys an entity and all its descendants. Descendants are
// destroyed before their parent.
func (w *World) RemoveSubtree(e *Entity) {
	for _, c := range e.Children() {
		w.RemoveSubtree(c)
	}
	w.RemoveEntity(e)
}

// RemoveAll destroys every entity of the world.
func (w *World) RemoveAll() {
	for _, e := range w.Roots() {
		w.RemoveSubtree(e)
	}
}

// LastEntityID returns the id of the last created entity, 0 if none.
func (w *World) LastEntityID() uint32 {
	return w.entityIDs.Last()
}

func (w *World) EntityByID(id uint32) (*Entity, bool) {
	w.entityMutex.RLock()
	defer w.entityMutex.RUnlock()

	e, ok := w.entities[id]
	return e, ok
}

func (w *World) Entities() []*Entity {
	w.entityMutex.RLock()
	defer w.entityMutex.RUnlock()

	entities := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		entities = append(entities, e)
	}
	return entities
}

// Roots returns the entities that have no parent.
func (w *World) Roots() []*Entity {
	w.entityMutex.RLock()
	defer w.entityMutex.RUnlock()

	var roots []*Entity
	for _, e := range w.entities {
		if e.parent == nil {
			roots = append(roots, e)
		}
	}
	return roots
}

func (w *World) EntityCount() int {
	w.entityMutex.RLock()
	defer w.entityMutex.RUnlock()

	return len(w.entities)
}

// HandleFrame registers a handler called at each frame while the world is
// running. Handlers may call HandleFrame and cancel functions. The handlers
// of a frame are fixed when the frame starts.
func (w *World) HandleFrame(h func()) (cancel func()) {
	w.frameMutex.Lock()
	defer w.frameMutex.Unlock()

	id := w.frameHandlerIDs.New()
	w.frameHandlers[id] = h

	return func() {
		w.frameMutex.Lock()
		defer w.frameMutex.Unlock()

		delete(w.frameHandlers, id)
		w.frameHandlerIDs.Reuse(id)
	}
}

// StartDispatchFrames dispatches frames until the world is closed. It
// blocks and must be called only once.
func (w *World) StartDispatchFrames() {
	w.startFrameOnce.Do(func() {
		for {
			select {
			case <-w.closeFrameChan:
				return

			case <-w.frameTicker.C:
				w.DispatchFrame()
			}
		}
	})
}

// DispatchFrame calls the frame handlers once if the world is running.
func (w *World) DispatchFrame() {
	if w.RunState() != RunStateRunning {
		return
	}

	w.frameMutex.RLock()
	handlers := make([]func(), 0, len(w.frameHandlers))
	for _, h := range w.frameHandlers {
		handlers = append(handlers, h)
	}
	w.frameMutex.RUnlock()

	for _, h := range handlers {
		h()
	}
}
