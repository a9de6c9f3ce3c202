package analysis

import (
	"math"
	"testing"
)

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		cycle    int
		interval float64
		want     float64
	}{
		{"ten sample cycle", 100, 10, 2, 20},
		{"hourly samples, day cycle", 240, 24, 3600, 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 1e11 + 5e9*math.Sin(2*math.Pi*float64(i)/float64(tt.cycle))
			}

			got, ok := DominantPeriod(data, tt.interval)
			if !ok {
				t.Fatal("expected a period")
			}
			if math.Abs(got-tt.want)/tt.want > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	data := []float64{3, 3, 3, 3, 3, 3, 3, 3}
	if _, ok := DominantPeriod(data, 1); ok {
		t.Error("flat series has no period")
	}
	if _, ok := DominantPeriod(data[:2], 1); ok {
		t.Error("short series has no period")
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	if got := len(PowerSpectrum(make([]float64, 16))); got != 9 {
		t.Errorf("expected 9 bins, got %d", got)
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}
