package billow

// drawEntry is one billboard's per-frame projection result, collected into
// Scene.entries before sorting.
type drawEntry struct {
	billboard *Billboard
	placement Placement
	order     int // position in the active set, for stable ties
}

// entryLessOrEqual returns true if a should be drawn before or at the same
// position as b: farther first, input order on equal depth.
func entryLessOrEqual(a, b drawEntry) bool {
	if a.placement.Depth != b.placement.Depth {
		return a.placement.Depth > b.placement.Depth
	}
	return a.order <= b.order
}

// mergeSort sorts s.entries in place using s.sortBuf as scratch space.
// Bottom-up merge sort: stable, and allocation-free once the scratch buffer
// reaches its high-water mark. Equal depths also compare on drawEntry.order,
// the billboard's index in the active set, so billboards at the same depth
// always draw in insertion order.
func (s *Scene) mergeSort() {
	n := len(s.entries)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]drawEntry, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.entries
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.entries, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []drawEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if entryLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
