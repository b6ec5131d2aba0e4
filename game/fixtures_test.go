package game

// standardOrigins lays the standard fleet (ids 1..10, all horizontal) on rows 0, 2 and 4.
var standardOrigins = map[int]Coordinate{
	1:  {Col: 0, Row: 0},
	2:  {Col: 5, Row: 0},
	3:  {Col: 0, Row: 2},
	4:  {Col: 4, Row: 2},
	5:  {Col: 7, Row: 2},
	6:  {Col: 0, Row: 4},
	7:  {Col: 3, Row: 4},
	8:  {Col: 5, Row: 4},
	9:  {Col: 7, Row: 4},
	10: {Col: 9, Row: 4},
}

func standardLayout() *Layout {
	layout, err := NewLayout(10, NewFleet(NewStandardRules()), standardOrigins)
	if err != nil {
		panic(err)
	}
	return layout
}

// touching reports whether two footprints share or neighbour a cell.
func touching(a, b []Coordinate, size int) bool {
	for _, ca := range a {
		for _, cb := range b {
			if ca == cb {
				return true
			}
			for _, n := range Around(ca, size) {
				if n == cb {
					return true
				}
			}
		}
	}
	return false
}
