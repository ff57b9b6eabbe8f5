package contour

import "math"

// Rect is an axis-aligned bounding box with inclusive corners.
type Rect struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Feature summarizes the geometry and nesting of one traced contour.
type Feature struct {
	// Index of the contour in the trace result.
	Index int `json:"index"`

	// Parent is the index of the enclosing contour, or -1 at top level.
	Parent int `json:"parent"`

	// Depth is the nesting depth: 0 for top-level contours, 1 for their
	// direct children, and so on.
	Depth int `json:"depth"`

	// Hole mirrors the contour's border kind.
	Hole bool `json:"hole"`

	// Vertices is the number of direction-change points on the contour.
	Vertices int `json:"vertices"`

	// Area is the polygon area enclosed by the vertices (shoelace
	// formula). Single-point and two-point contours have zero area.
	Area float64 `json:"area"`

	// Perimeter is the length of the closed vertex polygon.
	Perimeter float64 `json:"perimeter"`

	// Bounds is the bounding box of the contour's vertices.
	Bounds Rect `json:"bounds"`
}

// Summarize computes per-contour features from a trace result. The
// returned slice is indexed like the contour sequence.
func Summarize(res *TraceResult) []Feature {
	features := make([]Feature, len(res.Contours))
	depths := make([]int, len(res.Contours))

	for i, c := range res.Contours {
		parent := res.Hierarchy[i].Parent
		depth := 0
		if parent >= 0 {
			// Parents are always discovered before their children, so
			// the depth of every ancestor is already known.
			depth = depths[parent] + 1
		}
		depths[i] = depth

		features[i] = Feature{
			Index:     i,
			Parent:    parent,
			Depth:     depth,
			Hole:      c.Hole,
			Vertices:  len(c.Points),
			Area:      polygonArea(c.Points),
			Perimeter: polygonPerimeter(c.Points),
			Bounds:    pointsBounds(c.Points),
		}
	}
	return features
}

// polygonArea computes the absolute shoelace area of a closed polygon.
func polygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum int64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return math.Abs(float64(sum)) / 2
}

// polygonPerimeter sums the Euclidean lengths of the closed polygon's
// edges. A single point has zero perimeter.
func polygonPerimeter(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		dx := float64(q.X - p.X)
		dy := float64(q.Y - p.Y)
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	return sum
}

// pointsBounds returns the inclusive bounding box of a point set.
func pointsBounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{X1: points[0].X, Y1: points[0].Y, X2: points[0].X, Y2: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.X1 {
			r.X1 = p.X
		}
		if p.X > r.X2 {
			r.X2 = p.X
		}
		if p.Y < r.Y1 {
			r.Y1 = p.Y
		}
		if p.Y > r.Y2 {
			r.Y2 = p.Y
		}
	}
	return r
}
