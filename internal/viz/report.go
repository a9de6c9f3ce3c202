package viz

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/trace"
)

// FrameTable renders one trace frame as a bordered table. Each body row
// also carries its distance and speed relative to the first body.
func FrameTable(f trace.Frame, th Theme) string {
	st := NewStyles(th)

	rows := make([][]string, 0, len(f.Bodies))
	for i, b := range f.Bodies {
		dist, speed := 0.0, b.Velocity.Norm()
		if i > 0 {
			ref := f.Bodies[0]
			dist = b.Position.Sub(ref.Position).Norm()
			speed = b.Velocity.Sub(ref.Velocity).Norm()
		}
		rows = append(rows, []string{
			b.Name,
			sci(b.Mass),
			sci(b.Position.X), sci(b.Position.Y), sci(b.Position.Z),
			sci(b.Velocity.X), sci(b.Velocity.Y), sci(b.Velocity.Z),
			sci(dist), sci(speed),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(th.Border)).
		Headers("Name", "Mass", "Px", "Py", "Pz", "Vx", "Vy", "Vz", "|r-r0|", "|v-v0|").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true).Foreground(th.Primary)
			case col == 0:
				return s.Foreground(th.Accent)
			default:
				return s.Foreground(th.Text).Align(lipgloss.Right)
			}
		})

	header := st.Title.Render(fmt.Sprintf("Step %d, Time: %s s, %d bodies", f.Step, trace.FormatTime(f.Time), len(f.Bodies)))
	return header + "\n" + t.Render()
}

// DistanceSeries returns the separation between two named bodies and the
// frame time of each sample. Frames missing either body are skipped.
func DistanceSeries(frames []trace.Frame, body, ref string) (dist, times []float64, err error) {
	dist = make([]float64, 0, len(frames))
	times = make([]float64, 0, len(frames))
	for _, f := range frames {
		b, ok := f.Find(body)
		if !ok {
			continue
		}
		r, ok := f.Find(ref)
		if !ok {
			continue
		}
		dist = append(dist, b.Position.Sub(r.Position).Norm())
		times = append(times, f.Time)
	}

	if len(dist) == 0 {
		return nil, nil, fmt.Errorf("no frame contains both %q and %q", body, ref)
	}
	return dist, times, nil
}

// DistancePlot charts DistanceSeries for body and ref.
func DistancePlot(frames []trace.Frame, body, ref string, width, height int) (string, error) {
	series, _, err := DistanceSeries(frames, body, ref)
	if err != nil {
		return "", err
	}
	if len(series) == 1 {
		series = append(series, series[0])
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	caption := fmt.Sprintf("|%s - %s| in m over %d frames (min %s, max %s)",
		body, ref, len(series), sci(lo), sci(hi))
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}

func sci(v float64) string {
	return strconv.FormatFloat(v, 'e', 4, 64)
}
