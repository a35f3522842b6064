package reconcile

import "sort"

// PlanDeletes computes which persisted keys a batch removes.
// It is pure: existing is the table's current key set and entries the incoming batch.
func PlanDeletes(policy Policy, existing []int, entries []Entry) Plan {
	switch policy {
	case DeleteAll:
		return Plan{All: true}
	case DeleteMissing:
		incoming := make(map[int]struct{}, len(entries))
		for _, entry := range entries {
			if key, ok := entry.ID.Key(); ok {
				incoming[key] = struct{}{}
			}
		}

		var keys []int
		seen := make(map[int]struct{}, len(existing))
		for _, key := range existing {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, keep := incoming[key]; !keep {
				keys = append(keys, key)
			}
		}
		sort.Ints(keys)
		return Plan{Keys: keys}
	default:
		return Plan{}
	}
}
