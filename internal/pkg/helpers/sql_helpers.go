package helpers

// NullableID converts a zero id read through COALESCE back into a missing reference
func NullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// UniqueIDs drops duplicate ids while keeping the first occurrence order
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
