package plantmap

import (
	"fmt"
	"sort"

	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
)

// Pure interval queries and mutations over a snapshot. None of these touch
// storage; the service composes them with load/save.

// latest picks the association with the greatest start time. Strictly-greater
// comparison keeps the earliest-inserted record on ties, so resolution stays
// deterministic even if overlapping intervals sneak into history.
func latest(candidates []models.Association) *models.Association {
	return common.Reducer(candidates, func(best *models.Association, a models.Association) *models.Association {
		if best == nil || a.StartTime > best.StartTime {
			c := a
			return &c
		}
		return best
	}, nil)
}

// ActiveAt resolves the association active for deviceID at instant ts.
// With overlapping history the one with the greatest start time wins.
func ActiveAt(snap *models.Snapshot, deviceID string, ts string) *models.Association {
	var matches []models.Association
	for _, a := range snap.Associations {
		if a.DeviceID == deviceID && a.ActiveAt(ts) {
			matches = append(matches, a)
		}
	}
	return latest(matches)
}

// AllFor returns every association of a device, newest first.
func AllFor(snap *models.Snapshot, deviceID string) []models.Association {
	var result []models.Association
	for _, a := range snap.Associations {
		if a.DeviceID == deviceID {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime > result[j].StartTime
	})
	return result
}

// AllActiveWithLocation returns, per device, the association active at ts that
// carries both GPS coordinates. At most one entry per device: the one with
// the greatest start time.
func AllActiveWithLocation(snap *models.Snapshot, ts string) map[string]models.Association {
	byDevice := make(map[string][]models.Association)
	for _, a := range snap.Associations {
		if a.ActiveAt(ts) && a.HasLocation() {
			byDevice[a.DeviceID] = append(byDevice[a.DeviceID], a)
		}
	}

	result := make(map[string]models.Association, len(byDevice))
	for deviceID, candidates := range byDevice {
		result[deviceID] = *latest(candidates)
	}
	return result
}

func closeAt(snap *models.Snapshot, id string, endTime string, updatedAt string) *models.Association {
	for i := range snap.Associations {
		if snap.Associations[i].ID == id {
			snap.Associations[i].EndTime = &endTime
			snap.Associations[i].UpdatedAt = updatedAt
			updated := snap.Associations[i]
			return &updated
		}
	}
	return nil
}

// CloseAssociation sets the end time of the association with the given id and
// refreshes its updated_at. Returns a copy of the updated record.
func CloseAssociation(snap *models.Snapshot, id string, endTime string, updatedAt string) (*models.Association, error) {
	for i := range snap.Associations {
		if snap.Associations[i].ID != id {
			continue
		}
		if endTime <= snap.Associations[i].StartTime {
			return nil, fmt.Errorf("%w: association %s starts at %s", ErrInvalidInterval, id, snap.Associations[i].StartTime)
		}
		return closeAt(snap, id, endTime, updatedAt), nil
	}
	return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
}

// Insert appends assoc to the snapshot. When assoc is open-ended and the
// device already has an open association starting at or before assoc's start,
// that prior association is closed at assoc.StartTime first. This is the
// write-path procedure that keeps a device on at most one open interval.
// Returns a copy of the auto-closed record, if any.
func Insert(snap *models.Snapshot, assoc models.Association, updatedAt string) *models.Association {
	var closed *models.Association

	if assoc.Open() {
		var open []models.Association
		for _, a := range snap.Associations {
			if a.DeviceID == assoc.DeviceID && a.Open() && a.StartTime <= assoc.StartTime {
				open = append(open, a)
			}
		}
		if prior := latest(open); prior != nil {
			// Equal start times yield an empty half-open interval for the
			// prior record, which is harmless; skip the > check on purpose.
			closed = closeAt(snap, prior.ID, assoc.StartTime, updatedAt)
		}
	}

	snap.Associations = append(snap.Associations, assoc)
	return closed
}
