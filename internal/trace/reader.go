package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Frame is one step block of a trace.
type Frame struct {
	Step   int
	Time   float64
	Bodies []dynamo.Body
}

// Find returns the body with the given name, if present.
func (f Frame) Find(name string) (dynamo.Body, bool) {
	for _, b := range f.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return dynamo.Body{}, false
}

type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

func ReadFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses every frame in r. Blank lines and column headers are skipped.
func Read(r io.Reader) ([]Frame, error) {
	frames := make([]Frame, 0)
	cur := -1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "Name") {
			continue
		}

		if strings.HasPrefix(line, "# Step") {
			fr, err := parseHeader(line)
			if err != nil {
				return frames, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			frames = append(frames, fr)
			cur = len(frames) - 1
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if cur < 0 {
			return frames, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("body line before step header")}
		}
		b, err := parseBody(line)
		if err != nil {
			return frames, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		frames[cur].Bodies = append(frames[cur].Bodies, b)
	}

	return frames, sc.Err()
}

func parseHeader(line string) (Frame, error) {
	// "# Step 12, Time: 43200 s"
	var fr Frame
	rest := strings.TrimPrefix(line, "# Step")
	stepPart, timePart, ok := strings.Cut(rest, ",")
	if !ok {
		return fr, fmt.Errorf("missing time field")
	}

	step, err := strconv.Atoi(strings.TrimSpace(stepPart))
	if err != nil {
		return fr, fmt.Errorf("step counter: %w", err)
	}

	timePart = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(timePart), "Time:"))
	fields := strings.Fields(timePart)
	if len(fields) == 0 {
		return fr, fmt.Errorf("missing time value")
	}
	t, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fr, fmt.Errorf("time: %w", err)
	}

	fr.Step = step
	fr.Time = t
	return fr, nil
}

func parseBody(line string) (dynamo.Body, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 8 {
		return dynamo.Body{}, fmt.Errorf("expected 8 fields, got %d", len(tokens))
	}

	var vals [7]float64
	for i := range vals {
		v, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return dynamo.Body{}, err
		}
		vals[i] = v
	}

	return dynamo.Body{
		Name:     tokens[0],
		Mass:     vals[0],
		Position: dynamo.Vector3{X: vals[1], Y: vals[2], Z: vals[3]},
		Velocity: dynamo.Vector3{X: vals[4], Y: vals[5], Z: vals[6]},
	}, nil
}
