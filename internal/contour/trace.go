package contour

import (
	"github.com/ironsheep/contour-tools-mcp/internal/imaging"
)

// Point is a 2D pixel coordinate on a contour.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contour is one closed boundary curve. Points are direction-change
// vertices in trace order; consecutive vertices (and the last back to the
// first) are connected by straight 8-direction runs.
type Contour struct {
	// Points are the compressed vertices of the curve.
	Points []Point `json:"points"`

	// Hole is true for borders that bound a background region nested
	// inside foreground, false for outer borders.
	Hole bool `json:"hole"`
}

// Node records the topological links of one contour. Indices refer to
// positions in the contour sequence; -1 means "none". The field order
// mirrors the {next, previous, first child, parent} convention.
type Node struct {
	Next       int `json:"next"`
	Prev       int `json:"prev"`
	FirstChild int `json:"first_child"`
	Parent     int `json:"parent"`
}

// TraceResult is the full output of one tracing call: the contours in
// raster discovery order and a parallel hierarchy slice.
type TraceResult struct {
	// Count is the number of contours found.
	Count int `json:"count"`

	// Contours in discovery order.
	Contours []Contour `json:"contours"`

	// Hierarchy has one Node per contour, at the same index.
	Hierarchy []Node `json:"hierarchy"`
}

// Neighborhood directions in counterclockwise order as displayed
// (Y grows downward): E, NE, N, NW, W, SW, S, SE. Decreasing the index
// rotates clockwise.
var (
	dirDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dirDY = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

// dirLookup maps a (dy, dx) offset in {-1,0,1} to its direction index.
var dirLookup = [3][3]int{
	{3, 2, 1},
	{4, -1, 0},
	{5, 6, 7},
}

// dirBetween returns the direction index of the unit offset (dx, dy).
func dirBetween(dx, dy int) int {
	return dirLookup[dy+1][dx+1]
}

// grid is the tracer's private label plane: 0 background, 1 unvisited
// foreground, and +/-id for pixels claimed by border id. Out-of-bounds
// reads are background, which makes the image frame act as the enclosing
// hole border the hierarchy is rooted in.
type grid struct {
	w, h  int
	cells []int32
}

func (g *grid) at(x, y int) int32 {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0
	}
	return g.cells[y*g.w+x]
}

func (g *grid) set(x, y int, v int32) {
	g.cells[y*g.w+x] = v
}

// border accumulates one traced boundary before the result is assembled.
type border struct {
	id     int
	hole   bool
	parent int // border id of the parent, 1 for top level
	points []Point
}

// newBorder derives the parent of a fresh border from the last border met
// during the raster scan: a border of the same kind shares that border's
// parent, a border of the opposite kind nests directly under it.
func newBorder(id int, hole bool, lastMet *border) *border {
	b := &border{id: id, hole: hole}
	if lastMet.hole == hole {
		b.parent = lastMet.parent
	} else {
		b.parent = lastMet.id
	}
	return b
}

// Trace extracts all contours of the buffer and their nesting hierarchy.
//
// Any non-zero pixel is foreground; a 3-channel buffer counts a pixel as
// foreground when any of its channels is non-zero. The caller's buffer is
// not modified, and the result is deterministic for identical input.
//
// Returns imaging.ErrInvalidBuffer for nil or zero-area buffers and
// imaging.ErrUnsupportedChannelLayout for channel counts outside {1, 3}.
func Trace(buf *imaging.Buffer) (*TraceResult, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	g := foregroundGrid(buf)

	// Border id 1 is the virtual frame border: a hole with no parent.
	borders := []*border{nil, {id: 1, hole: true}}
	nbd := int32(1)

	for y := 0; y < g.h; y++ {
		lnbd := int32(1)
		for x := 0; x < g.w; x++ {
			fv := g.at(x, y)
			if fv == 0 {
				continue
			}

			switch {
			case fv == 1 && g.at(x-1, y) == 0:
				// Background-to-foreground transition: outer border.
				nbd++
				b := newBorder(int(nbd), false, borders[lnbd])
				borders = append(borders, b)
				followBorder(g, x, y, x-1, y, nbd, b)

			case fv >= 1 && g.at(x+1, y) == 0:
				// Foreground-to-background transition: hole border.
				if fv > 1 {
					lnbd = fv
				}
				nbd++
				b := newBorder(int(nbd), true, borders[lnbd])
				borders = append(borders, b)
				followBorder(g, x, y, x+1, y, nbd, b)
			}

			if cur := g.at(x, y); cur != 1 {
				if cur < 0 {
					lnbd = -cur
				} else {
					lnbd = cur
				}
			}
		}
	}

	return assemble(borders), nil
}

// followBorder walks one full closed border starting at (x, y), with
// (fromX, fromY) the background neighbor that triggered the start. Border
// pixels are appended to b in trace order and labeled in the grid: -id for
// pixels whose east neighbor is background (the region's exit pixels,
// which must not start new hole borders), +id otherwise.
func followBorder(g *grid, x, y, fromX, fromY int, id int32, b *border) {
	// Search clockwise around the start for the first foreground
	// neighbor. If there is none the contour is a single pixel.
	d0 := dirBetween(fromX-x, fromY-y)
	foundDir := -1
	for i := 0; i < 8; i++ {
		d := (d0 - i + 8) % 8
		if g.at(x+dirDX[d], y+dirDY[d]) != 0 {
			foundDir = d
			break
		}
	}
	if foundDir < 0 {
		g.set(x, y, -id)
		b.points = append(b.points, Point{x, y})
		return
	}

	firstX, firstY := x+dirDX[foundDir], y+dirDY[foundDir]
	prevX, prevY := firstX, firstY
	curX, curY := x, y

	for {
		// Resume counterclockwise just past the pixel we came from.
		d := dirBetween(prevX-curX, prevY-curY)
		var nextX, nextY int
		sawEastZero := false
		for i := 1; i <= 8; i++ {
			nd := (d + i) % 8
			nx, ny := curX+dirDX[nd], curY+dirDY[nd]
			if g.at(nx, ny) == 0 {
				if nd == 0 {
					sawEastZero = true
				}
				continue
			}
			nextX, nextY = nx, ny
			break
		}

		if sawEastZero {
			g.set(curX, curY, -id)
		} else if g.at(curX, curY) == 1 {
			g.set(curX, curY, id)
		}
		b.points = append(b.points, Point{curX, curY})

		// Back at the start about to rewalk the first step: done.
		if nextX == x && nextY == y && curX == firstX && curY == firstY {
			return
		}
		prevX, prevY = curX, curY
		curX, curY = nextX, nextY
	}
}

// foregroundGrid builds the label plane from the buffer. Non-zero is
// foreground; for 3-channel input, any non-zero channel qualifies.
func foregroundGrid(buf *imaging.Buffer) *grid {
	g := &grid{
		w:     buf.Width,
		h:     buf.Height,
		cells: make([]int32, buf.Width*buf.Height),
	}
	n := buf.Width * buf.Height
	if buf.Channels == 1 {
		for i := 0; i < n; i++ {
			if buf.Pix[i] != 0 {
				g.cells[i] = 1
			}
		}
		return g
	}
	for i := 0; i < n; i++ {
		j := i * 3
		if buf.Pix[j] != 0 || buf.Pix[j+1] != 0 || buf.Pix[j+2] != 0 {
			g.cells[i] = 1
		}
	}
	return g
}

// assemble converts the border table (ids 2..N) into the public result:
// contours indexed by discovery order with sibling/child links resolved.
func assemble(borders []*border) *TraceResult {
	count := len(borders) - 2
	contours := make([]Contour, 0, count)
	hierarchy := make([]Node, count)

	for i := 2; i < len(borders); i++ {
		bd := borders[i]
		contours = append(contours, Contour{
			Points: compress(bd.points),
			Hole:   bd.hole,
		})
	}

	for i := range hierarchy {
		hierarchy[i] = Node{Next: -1, Prev: -1, FirstChild: -1, Parent: -1}
	}

	// lastChild tracks the most recent child per parent (-1 for top
	// level) so siblings link in discovery order.
	lastChild := make(map[int]int)
	for i := 0; i < count; i++ {
		parent := borders[i+2].parent
		parentIdx := -1
		if parent >= 2 {
			parentIdx = parent - 2
		}
		hierarchy[i].Parent = parentIdx

		if prev, ok := lastChild[parentIdx]; ok {
			hierarchy[i].Prev = prev
			hierarchy[prev].Next = i
		} else if parentIdx >= 0 {
			hierarchy[parentIdx].FirstChild = i
		}
		lastChild[parentIdx] = i
	}

	return &TraceResult{
		Count:     count,
		Contours:  contours,
		Hierarchy: hierarchy,
	}
}

// compress drops chain points that continue in the same 8-direction as
// their predecessor, keeping only the endpoints of straight runs. The
// chain is treated as closed, so the first point is dropped too if the
// last segment runs straight through it.
func compress(points []Point) []Point {
	n := len(points)
	if n <= 2 {
		out := make([]Point, n)
		copy(out, points)
		return out
	}

	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		cur := points[i]
		dIn := dirBetween(cur.X-prev.X, cur.Y-prev.Y)
		dOut := dirBetween(next.X-cur.X, next.Y-cur.Y)
		if dIn != dOut {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		// A closed chain always turns somewhere; keep the start point as
		// a safety net against returning an empty contour.
		out = append(out, points[0])
	}
	return out
}
