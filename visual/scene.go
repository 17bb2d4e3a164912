// Package visual implements the rendering side of entities: a scene of
// visual nodes whose poses are either applied immediately or recorded and
// applied during the next render pass.
package visual

import (
	"context"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/posegraph/models"
)

// Scene creates visual nodes and runs render passes. The zero value is ready
// to use.
type Scene struct {
	mutex sync.RWMutex
	nodes []*Node
}

// CreateVisual creates a visual node. parent must be nil or a node created by
// the same scene.
func (s *Scene) CreateVisual(name string, parent models.Visual, owner *models.Entity) models.Visual {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := &Node{
		scene: s,
		owner: owner,
		name:  name,
		pose:  models.IdentityPose(),
	}

	if parent != nil {
		p, ok := parent.(*Node)
		if ok && p.scene == s {
			n.parent = p
		} else {
			logs.WithTag("visual_name", name).
				Warn("parent visual does not belong to the scene, attaching to the root")
		}
	}

	s.nodes = append(s.nodes, n)
	instrumentIncreaseVisualGauge()
	return n
}

// DeleteVisual removes a visual node from the scene. Its children are
// attached to the scene root.
func (s *Scene) DeleteVisual(v models.Visual) {
	n, ok := v.(*Node)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := -1
	for i, node := range s.nodes {
		if node == n {
			idx = i
		}
		if node.parent == n {
			node.parent = nil
		}
	}

	if idx < 0 {
		return
	}

	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	n.parent = nil
	instrumentDecreaseVisualGauge()
}

// Nodes returns the nodes of the scene in creation order.
func (s *Scene) Nodes() []*Node {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	nodes := make([]*Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// NodeByName returns the first node with the given name.
func (s *Scene) NodeByName(name string) (*Node, bool) {
	for _, n := range s.Nodes() {
		if n.Name() == name {
			return n, true
		}
	}
	return nil, false
}

// Update runs a render pass: the recorded poses of dirty nodes are applied.
// It returns the number of applied poses.
func (s *Scene) Update() int {
	var flushed int

	for _, n := range s.Nodes() {
		if n.flush() {
			flushed++
		}
	}

	instrumentFlushes(flushed)
	return flushed
}

// Start runs a render pass at each frame until the context is canceled.
func (s *Scene) Start(ctx context.Context, frameDuration time.Duration) {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			s.Update()
		}
	}
}
