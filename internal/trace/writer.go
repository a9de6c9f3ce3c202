// Package trace writes and reads the line-oriented trajectory format:
//
//	# Step 0, Time: 0 s
//	Name Mass Px Py Pz Vx Vy Vz
//	       Sun 1.989000e+30 0.000000e+00 ...
//	     Earth 5.972000e+24 1.496000e+11 ...
//	<blank line>
//
// Names are right-aligned to ten columns and numbers use %.6e. The time
// uses up to six significant digits until the first block that lists a
// body; from then on it is written as %.6e too, so a run reads
// "Time: 0 s" in its first header and "Time: 3.600000e+03 s" after.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const columnHeader = "Name Mass Px Py Pz Vx Vy Vz"

// Writer emits one block per WriteStep call. The step counter starts at 0
// and advances only when a block was written completely.
type Writer struct {
	w     *bufio.Writer
	c     io.Closer
	steps int
	// set once a body line has been written
	scientific bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create truncates or creates path and returns a buffered writer for it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	tw := NewWriter(f)
	tw.c = f
	return tw, nil
}

// Steps returns the number of blocks written so far, which is also the
// counter the next block will carry.
func (tw *Writer) Steps() int { return tw.steps }

func (tw *Writer) WriteStep(bodies []dynamo.Body, t float64) error {
	fmt.Fprintf(tw.w, "# Step %d, Time: %s s\n", tw.steps, tw.headerTime(t))
	tw.w.WriteString(columnHeader + "\n")

	for _, b := range bodies {
		fmt.Fprintf(tw.w, "%10s %.6e %.6e %.6e %.6e %.6e %.6e %.6e\n",
			b.Name, b.Mass,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
	}

	tw.w.WriteByte('\n')
	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("write trace step %d: %w", tw.steps, err)
	}
	if len(bodies) > 0 {
		tw.scientific = true
	}
	tw.steps++
	return nil
}

func (tw *Writer) headerTime(t float64) string {
	if tw.scientific {
		return strconv.FormatFloat(t, 'e', 6, 64)
	}
	return FormatTime(t)
}

// OnStep lets a Writer observe a simulation run.
func (tw *Writer) OnStep(step int, u *dynamo.Universe, t float64) error {
	return tw.WriteStep(u.All(), t)
}

func (tw *Writer) Close() error {
	if err := tw.w.Flush(); err != nil {
		return err
	}
	if tw.c != nil {
		return tw.c.Close()
	}
	return nil
}

// FormatTime renders t with at most six significant digits, switching to an
// exponent for large or small magnitudes: 0, 3600, 36000, 3.6e+06.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'g', 6, 64)
}
