package astar_test

import (
	"testing"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/tilemap"
)

// BenchmarkFindPath_Open measures corner-to-corner searches on an open 200×200 map.
func BenchmarkFindPath_Open(b *testing.B) {
	g := tilemap.Random(200, 200, 0, 1, tilemap.DefaultOptions())
	goal := tilemap.Pt(199, 199)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.FindPath[tilemap.Point](g, tilemap.Point{}, goal, heuristic.Manhattan[tilemap.Point], astar.NoIterationLimit)
	}
}

// BenchmarkSearch_Policies compares the open-set policies on a cluttered map.
func BenchmarkSearch_Policies(b *testing.B) {
	g := tilemap.Random(200, 200, 0.3, 1, tilemap.Options{Conn: tilemap.Conn8})
	goal := tilemap.Pt(199, 199)
	h := heuristic.Octile[tilemap.Point]

	for _, p := range []astar.Policy{astar.PolicyReinsert, astar.PolicyKeepFirst} {
		b.Run(p.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = astar.Search[tilemap.Point](g, tilemap.Point{}, goal, h,
					astar.WithMaxIterations[tilemap.Point](astar.NoIterationLimit),
					astar.WithPolicy[tilemap.Point](p))
			}
		})
	}
}
