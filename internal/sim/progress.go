package sim

import (
	"fmt"
	"io"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const progressMarkers = 10

// ProgressBar prints a ten-slot bar, one '#' per tenth of the run:
//
//	[#####     ] Done!
type ProgressBar struct {
	w          io.Writer
	totalSteps int
	nextMarker int
	started    bool
}

// NewProgressBar sizes the bar for int(duration/dt) steps.
func NewProgressBar(w io.Writer, cfg Config) *ProgressBar {
	return &ProgressBar{
		w:          w,
		totalSteps: int(cfg.Duration / cfg.Dt),
		nextMarker: 1,
	}
}

func (p *ProgressBar) Start() {
	if p.started {
		return
	}
	p.started = true
	fmt.Fprint(p.w, "[          ]")
	fmt.Fprint(p.w, "\r[")
}

func (p *ProgressBar) OnStep(step int, u *dynamo.Universe, t float64) error {
	p.Start()
	if step >= p.nextMarker*p.totalSteps/progressMarkers {
		fmt.Fprint(p.w, "#")
		p.nextMarker++
	}
	return nil
}

func (p *ProgressBar) Finish() {
	p.Start()
	fmt.Fprintln(p.w, "] Done!")
}
