package models

import "sort"

// EntitySnapshot is a read-only view of an entity.
type EntitySnapshot struct {
	ID            uint32 `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	ParentID      uint32 `json:"parent_id,omitempty"`
	Static        bool   `json:"static"`
	CanonicalBody bool   `json:"canonical_body,omitempty"`
	RelativePose  Pose   `json:"relative_pose"`
	WorldPose     Pose   `json:"world_pose"`
}

func (e *Entity) Snapshot() EntitySnapshot {
	s := EntitySnapshot{
		ID:            e.ID,
		Name:          e.Name(),
		Kind:          e.kind.String(),
		Static:        e.IsStatic(),
		CanonicalBody: e.IsCanonicalBody(),
		RelativePose:  e.RelativePose(),
		WorldPose:     e.WorldPose(),
	}

	if e.parent != nil {
		s.ParentID = e.parent.ID
	}
	return s
}

// Snapshot returns a view of every entity sorted by id. It is safe to call
// from another goroutine than the one updating the world.
func (w *World) Snapshot() []EntitySnapshot {
	w.entityMutex.RLock()
	defer w.entityMutex.RUnlock()

	snapshots := make([]EntitySnapshot, 0, len(w.entities))
	for _, e := range w.entities {
		snapshots = append(snapshots, e.Snapshot())
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots
}
