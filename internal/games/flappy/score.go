package flappy

// Scorer marks obstacles the bird has cleanly passed.
type Scorer struct {
	BirdLeft float64
}

// Update flags every newly passed obstacle as Scored and returns their IDs
// in track order. An obstacle counts once, and never if it was hit or is
// still overlapping the bird. overlapping may be nil.
func (s Scorer) Update(obstacles []Obstacle, overlapping []bool) []uint64 {
	var passed []uint64
	for i := range obstacles {
		o := &obstacles[i]
		if o.Scored || o.Collided {
			continue
		}
		if i < len(overlapping) && overlapping[i] {
			continue
		}
		if s.BirdLeft > o.TrailingEdge() {
			o.Scored = true
			passed = append(passed, o.ID)
		}
	}
	return passed
}
