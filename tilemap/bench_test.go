package tilemap_test

import (
	"testing"

	"github.com/katalvlaran/tilepath/tilemap"
)

// BenchmarkComponents measures region labelling on a 500×500 random map.
// Complexity: O(W×H×d)
func BenchmarkComponents(b *testing.B) {
	g := tilemap.Random(500, 500, 0.3, 42, tilemap.DefaultOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Components()
	}
}

// BenchmarkNeighbors measures one full neighbor scan per cell under Conn8.
func BenchmarkNeighbors(b *testing.B) {
	g := tilemap.Random(200, 200, 0.3, 7, tilemap.Options{Conn: tilemap.Conn8})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for y := range g.Height() {
			for x := range g.Width() {
				for range g.Neighbors(tilemap.Pt(x, y)) {
				}
			}
		}
	}
}
