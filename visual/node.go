package visual

import (
	"sync"

	"github.com/aukilabs/posegraph/models"
)

// Node is the visual representation of an entity.
//
// The dirty flag and the recorded pose are written together under the node
// mutex, so a render pass never applies a pose older than the one that set
// the flag.
type Node struct {
	scene *Scene
	owner *models.Entity

	// Guarded by the scene mutex.
	parent *Node

	mutex   sync.Mutex
	name    string
	pose    models.Pose
	pending models.Pose
	dirty   bool
}

func (n *Node) Name() string {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.name
}

func (n *Node) SetName(name string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.name = name
}

// Owner returns the entity the node represents.
func (n *Node) Owner() *models.Entity {
	return n.owner
}

// Parent returns the parent node, nil when attached to the scene root.
func (n *Node) Parent() *Node {
	n.scene.mutex.RLock()
	defer n.scene.mutex.RUnlock()

	return n.parent
}

// SetPose applies a pose immediately. A pose recorded earlier is dropped.
func (n *Node) SetPose(p models.Pose) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.pose = p
	n.dirty = false
	instrumentImmediateUpdate()
}

// MarkDirty records a pose to be applied by the next render pass.
func (n *Node) MarkDirty(p models.Pose) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.pending = p
	n.dirty = true
}

// Pose returns the applied pose, relative to the parent node.
func (n *Node) Pose() models.Pose {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.pose
}

func (n *Node) IsDirty() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.dirty
}

// WorldPose returns the applied pose composed with the applied poses of the
// parent nodes.
func (n *Node) WorldPose() models.Pose {
	p := n.Pose()
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		p = p.Add(parent.Pose())
	}
	return p
}

func (n *Node) flush() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if !n.dirty {
		return false
	}

	n.pose = n.pending
	n.dirty = false
	return true
}
