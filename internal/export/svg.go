// Package export renders recorded traces as SVG orbit diagrams.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/trace"
)

var palette = []string{
	"#ffd700", "#00ccff", "#00ff88", "#ff6b6b", "#ff9ff3",
	"#feca57", "#48dbfb", "#c8d6e5", "#ff9f43", "#1dd1a1",
}

type point struct{ X, Y float64 }

// OrbitsSVG draws the top-down path of every body across frames, one
// polyline per body name in order of first appearance. Bodies seen in
// only one frame are drawn as dots.
func OrbitsSVG(w io.Writer, frames []trace.Frame, size int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to export")
	}
	if size <= 0 {
		return fmt.Errorf("invalid size %d", size)
	}

	order := make([]string, 0)
	paths := make(map[string][]point)
	for _, f := range frames {
		for _, b := range f.Bodies {
			if _, ok := paths[b.Name]; !ok {
				order = append(order, b.Name)
			}
			paths[b.Name] = append(paths[b.Name], point{b.Position.X, b.Position.Y})
		}
	}

	// Square bounds keep circular orbits circular.
	minX, maxX, minY, maxY := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	for _, pts := range paths {
		for _, p := range pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		span = 1
	}
	span *= 1.1
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := float64(size) / span

	project := func(p point) (float64, float64) {
		x := (p.X-cx)*scale + float64(size)/2
		y := float64(size)/2 - (p.Y-cy)*scale
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size)

	for i, name := range order {
		color := palette[i%len(palette)]
		pts := paths[name]

		if len(pts) == 1 {
			x, y := project(pts[0])
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s"><title>%s</title></circle>
`, x, y, color, name)
			continue
		}

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="`, color)
		for j, p := range pts {
			x, y := project(p)
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		fmt.Fprintf(&sb, `"><title>%s</title></path>
`, name)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
