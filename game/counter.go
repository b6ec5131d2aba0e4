package game

// Snapshot is a point-in-time view of a Counter.
type Snapshot struct {
	Remaining map[int]int // ship size -> ships still to place (or still afloat)
	Placed    int
	Total     int
}

// Counter tracks per-size remaining ships and the placed total. During setup "placed" means put
// on the board; during play the rival counter uses it for ships sunk. Observers are called
// synchronously after every change.
type Counter struct {
	initial   map[int]int
	remaining map[int]int
	placed    int
	total     int
	observers []func(Snapshot)
}

func NewCounter(fleet *Fleet) *Counter {
	c := &Counter{initial: fleet.CountBySize(), total: fleet.Len()}
	c.remaining = copyCounts(c.initial)
	return c
}

// Subscribe registers fn and immediately calls it with the current state.
func (c *Counter) Subscribe(fn func(Snapshot)) {
	c.observers = append(c.observers, fn)
	fn(c.Snapshot())
}

func (c *Counter) Snapshot() Snapshot {
	return Snapshot{Remaining: copyCounts(c.remaining), Placed: c.placed, Total: c.total}
}

func (c *Counter) Remaining(size int) int {
	return c.remaining[size]
}

func (c *Counter) Placed() int {
	return c.placed
}

func (c *Counter) AllPlaced() bool {
	return c.placed == c.total
}

// Take records that a ship of the given size was placed (or sunk).
func (c *Counter) Take(size int) {
	c.remaining[size]--
	c.placed++
	c.notify()
}

// Return undoes Take for a ship of the given size.
func (c *Counter) Return(size int) {
	c.remaining[size]++
	c.placed--
	c.notify()
}

func (c *Counter) SetAllPlaced() {
	for size := range c.remaining {
		c.remaining[size] = 0
	}
	c.placed = c.total
	c.notify()
}

func (c *Counter) SetAllRemaining() {
	c.remaining = copyCounts(c.initial)
	c.placed = 0
	c.notify()
}

func (c *Counter) notify() {
	snap := c.Snapshot()
	for _, fn := range c.observers {
		fn(snap)
	}
}

func copyCounts(m map[int]int) map[int]int {
	cp := make(map[int]int, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
