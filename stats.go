package linearmap

type Stats struct {
	Size       int
	Capacity   int
	LoadFactor float32

	// Entries stored away from their ideal bucket.
	Displaced int
	// Longest distance between an entry and its ideal bucket.
	MaxProbeLength int
}

// Stats walks the buckets and reports the table's occupancy and clustering.
func (t *Table[K, V]) Stats() Stats {
	n := uint64(len(t.buckets))

	s := Stats{
		Size:     t.size,
		Capacity: int(n),
	}

	if n == 0 {
		return s
	}

	s.LoadFactor = float32(t.size) / float32(n)

	for i := range t.buckets {
		h := t.buckets[i].hash
		if h == 0 {
			continue
		}

		ideal := h % n
		dist := (uint64(i) + n - ideal) % n
		if dist == 0 {
			continue
		}

		s.Displaced++
		s.MaxProbeLength = max(s.MaxProbeLength, int(dist))
	}

	return s
}
