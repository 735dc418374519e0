package roads

import (
	"citywalk/internal/terrain"
)

// StreetGrid builds one road per centerline, all of the same width
func StreetGrid(field *terrain.HeightField, centerlines []Segment, width float64) []Road {
	roads := make([]Road, 0, len(centerlines))
	for _, s := range centerlines {
		roads = append(roads, Build(field, s.From, s.To, width))
	}
	return roads
}
