package param

// Point is one queued parameter change within a block
type Point struct {
	ID     uint32
	Offset int32
	Value  float64
}

// Changes is a fixed-capacity queue of parameter points for one block.
// Hosts may deliver several points per parameter; only the last one (by
// sample offset, then by arrival) is applied.
type Changes struct {
	points []Point
}

// NewChanges preallocates room for capacity points
func NewChanges(capacity int) *Changes {
	return &Changes{points: make([]Point, 0, capacity)}
}

// Add queues a point. It reports false when the queue is full.
func (c *Changes) Add(id uint32, offset int32, value float64) bool {
	if len(c.points) == cap(c.points) {
		return false
	}
	c.points = append(c.points, Point{ID: id, Offset: offset, Value: value})
	return true
}

// Len returns the number of queued points
func (c *Changes) Len() int {
	return len(c.points)
}

// Last returns the value that wins for id in this block
func (c *Changes) Last(id uint32) (float64, bool) {
	idx := -1
	for i := range c.points {
		if c.points[i].ID == id && c.supersedes(i, idx) {
			idx = i
		}
	}
	if idx < 0 {
		return 0, false
	}
	return c.points[idx].Value, true
}

// Source resolves parameter IDs
type Source interface {
	Get(id uint32) *Parameter
}

// ApplyTo stores the winning value of every queued parameter into r and
// clears the queue. Unknown IDs are ignored. It never allocates.
func (c *Changes) ApplyTo(r Source) {
	for i := range c.points {
		if !c.isLast(i) {
			continue
		}
		if p := r.Get(c.points[i].ID); p != nil {
			p.SetValue(c.points[i].Value)
		}
	}
	c.Clear()
}

// Clear empties the queue
func (c *Changes) Clear() {
	c.points = c.points[:0]
}

// supersedes reports whether point i replaces point j of the same ID
func (c *Changes) supersedes(i, j int) bool {
	return j < 0 || c.points[i].Offset >= c.points[j].Offset
}

func (c *Changes) isLast(i int) bool {
	for j := range c.points {
		if j != i && c.points[j].ID == c.points[i].ID {
			if j > i && c.points[j].Offset >= c.points[i].Offset {
				return false
			}
			if j < i && c.points[j].Offset > c.points[i].Offset {
				return false
			}
		}
	}
	return true
}
