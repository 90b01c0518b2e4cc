package tilemap

import (
	"math/rand"
)

// terrain draws for Random: mostly grass, some rough ground.
var randomTerrain = []rune{'.', '.', '.', '.', '.', 'h', 'h', 'f', '~'}

// Random builds a width×height grid with DefaultLegend terrain and clustered
// walls laid down by random walks. density in [0,1] is the chance that each
// walk step drops a wall. The same seed always yields the same grid.
// Non-positive dimensions are clamped to 1.
func Random(width, height int, density float64, seed int64, opts Options) *Grid {
	width, height = max(width, 1), max(height, 1)
	r := rand.New(rand.NewSource(seed))

	glyphs := make([]rune, width*height)
	for i := range glyphs {
		glyphs[i] = randomTerrain[r.Intn(len(randomTerrain))]
	}

	clusters := width*height/25 + 1
	const steps = 20
	dirs := offsets4
	for range clusters {
		p := Pt(r.Intn(width), r.Intn(height))
		for range steps {
			if r.Float64() < density {
				glyphs[p.Y*width+p.X] = '#'
			}
			np := p.Add(dirs[r.Intn(len(dirs))])
			if np.X >= 0 && np.X < width && np.Y >= 0 && np.Y < height {
				p = np
			}
		}
	}

	return newGrid(width, height, glyphs, DefaultLegend(), opts.Conn)
}
