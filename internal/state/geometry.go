package state

import "math"

// MaxPointGap is the largest distance Interpolate leaves between two
// consecutive points.
const MaxPointGap = 2.0

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Interpolate returns evenly spaced points from start to end inclusive, no
// two consecutive points further apart than MaxPointGap. Equal endpoints
// yield the single point start.
//
// The step count is rounded up so that spans which are not a multiple of
// MaxPointGap still respect the gap.
func Interpolate(start, end Point) []Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if dx == 0 && dy == 0 {
		return []Point{start}
	}
	steps := max(int(math.Ceil(math.Hypot(dx, dy)/MaxPointGap)), 1)

	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		points = append(points, Point{X: start.X + dx*f, Y: start.Y + dy*f})
	}
	points[steps] = end
	return points
}
