package network

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-polyline"

	"github.com/katalvlaran/tilepath/heuristic"
)

// AddRoad connects two geographic nodes with their great-circle length in
// metres as the cost, so heuristic.GreatCircle stays admissible on the network.
func AddRoad(n *Network[s2.LatLng], a, b s2.LatLng) error {
	return n.AddEdge(a, b, heuristic.GreatCircle(a, b))
}

// snapTolerance is the half-size, in degrees, of the box each node occupies in the tree.
const snapTolerance = 1e-7

// candidates is how many planar nearest neighbors are re-ranked by true distance.
const candidates = 8

// site is one node as an rtreego.Spatial.
type site struct {
	ll  s2.LatLng
	loc rtreego.Point
}

func (s *site) Bounds() rtreego.Rect { return s.loc.ToRect(snapTolerance) }

// Index snaps arbitrary coordinates to the nearest network node.
// It is built once from a node set and is read-only afterwards.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex builds an R-tree over nodes (2 dimensions, 25–50 entries per node).
func NewIndex(nodes []s2.LatLng) *Index {
	tree := rtreego.NewTree(2, 25, 50)
	for _, ll := range nodes {
		tree.Insert(&site{ll: ll, loc: rtreego.Point{ll.Lat.Degrees(), ll.Lng.Degrees()}})
	}

	return &Index{tree: tree, size: len(nodes)}
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return ix.size }

// Nearest returns the indexed node closest to ll by great-circle distance and
// that distance in metres. The R-tree pre-selects candidates in planar
// degrees; the best of them is chosen on the sphere.
// Returns ErrEmptyIndex when nothing is indexed.
func (ix *Index) Nearest(ll s2.LatLng) (s2.LatLng, float64, error) {
	if ix.size == 0 {
		return s2.LatLng{}, 0, ErrEmptyIndex
	}

	q := rtreego.Point{ll.Lat.Degrees(), ll.Lng.Degrees()}
	best, bestDist := s2.LatLng{}, math.Inf(1)
	for _, sp := range ix.tree.NearestNeighbors(candidates, q) {
		s, ok := sp.(*site)
		if !ok {
			continue
		}
		if d := heuristic.GreatCircle(ll, s.ll); d < bestDist {
			best, bestDist = s.ll, d
		}
	}

	return best, bestDist, nil
}

// EncodePolyline renders a path as a Google encoded polyline (precision 5).
func EncodePolyline(path []s2.LatLng) string {
	coords := make([][]float64, 0, len(path))
	for _, ll := range path {
		coords = append(coords, []float64{ll.Lat.Degrees(), ll.Lng.Degrees()})
	}

	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline parses an encoded polyline back into coordinates.
func DecodePolyline(s string) ([]s2.LatLng, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	out := make([]s2.LatLng, 0, len(coords))
	for _, c := range coords {
		out = append(out, s2.LatLngFromDegrees(c[0], c[1]))
	}

	return out, nil
}
