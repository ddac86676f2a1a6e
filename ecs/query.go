package ecs

// smallest returns the set with the fewest entries, or nil if any is missing.
func smallest(sets ...*SparseSet) *SparseSet {
	var best *SparseSet
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if best == nil || s.Len() < best.Len() {
			best = s
		}
	}
	return best
}

// intersect returns the ids present in every set.
func intersect(sets ...*SparseSet) []entityID {
	base := smallest(sets...)
	if base == nil {
		return nil
	}
	out := make([]entityID, 0, base.Len())
	for _, id := range base.ids() {
		all := true
		for _, s := range sets {
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	return out
}
