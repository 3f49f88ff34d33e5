package geom

import (
	"strconv"
	"strings"
)

// Path data uses a compact move/line string: "M10,10 L50,50 L60,20".
// The first point carries an M command, every following point an L.
// Parsing is lenient: malformed tokens are skipped so a corrupt stroke
// never breaks hit-testing or rendering.

// ParsePath decodes a path string into its ordered points.
func ParsePath(data string) []Point {
	var pts []Point
	for _, tok := range strings.Fields(data) {
		if len(tok) < 2 {
			continue
		}
		switch tok[0] {
		case 'M', 'L', 'm', 'l':
			tok = tok[1:]
		}
		xs, ys, ok := strings.Cut(tok, ",")
		if !ok {
			continue
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, Point{x, y})
	}
	return pts
}

// FormatPath encodes points back into the compact path string.
func FormatPath(pts []Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte(' ')
			sb.WriteByte('L')
		}
		sb.WriteString(formatCoord(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(p.Y))
	}
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PathBounds returns the bounding box of the decoded path translated by
// (dx, dy). A single point yields a zero-size rect at that point.
func PathBounds(data string, dx, dy float64) (Rect, bool) {
	pts := ParsePath(data)
	if len(pts) == 0 {
		return Rect{}, false
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{minX + dx, minY + dy, maxX - minX, maxY - minY}, true
}

// PathBuilder accumulates the points of an in-progress draw gesture and
// keeps the rendered preview string current.
type PathBuilder struct {
	pts  []Point
	data strings.Builder
}

func (b *PathBuilder) Append(p Point) {
	if len(b.pts) == 0 {
		b.data.WriteByte('M')
	} else {
		b.data.WriteString(" L")
	}
	b.data.WriteString(formatCoord(p.X))
	b.data.WriteByte(',')
	b.data.WriteString(formatCoord(p.Y))
	b.pts = append(b.pts, p)
}

func (b *PathBuilder) Len() int { return len(b.pts) }

// String returns the path accumulated so far.
func (b *PathBuilder) String() string { return b.data.String() }
