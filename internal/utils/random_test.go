package utils

import (
	"math"
	"testing"
)

func TestRandomReproducibility(t *testing.T) {
	seed := int64(42)

	// Create two RNGs with the same seed
	rng1 := NewRandom(seed)
	rng2 := NewRandom(seed)

	// Verify they produce identical sequences
	t.Run("IntN", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v1 := rng1.IntN(1000)
			v2 := rng2.IntN(1000)
			if v1 != v2 {
				t.Errorf("Mismatch at iteration %d: %d != %d", i, v1, v2)
				return
			}
		}
	})

	rng1 = NewRandom(seed)
	rng2 = NewRandom(seed)

	t.Run("Mixed operations", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			if rng1.IntN(100) != rng2.IntN(100) {
				t.Error("IntN mismatch")
				return
			}
			if rng1.Float64() != rng2.Float64() {
				t.Error("Float64 mismatch")
				return
			}
			if rng1.Poisson(3) != rng2.Poisson(3) {
				t.Error("Poisson mismatch")
				return
			}
			if rng1.Beta(2, 5) != rng2.Beta(2, 5) {
				t.Error("Beta mismatch")
				return
			}
			if rng1.WeightedPick([]float64{0.2, 0.8}) != rng2.WeightedPick([]float64{0.2, 0.8}) {
				t.Error("WeightedPick mismatch")
				return
			}
		}
	})
}

func TestRandomSeedStorage(t *testing.T) {
	rng := NewRandom(12345)
	if rng.Seed() != 12345 {
		t.Errorf("Expected seed 12345, got %d", rng.Seed())
	}

	// Seed 0 asks for a generated seed
	rng = NewRandom(0)
	if rng.Seed() == 0 {
		t.Error("Expected non-zero auto-generated seed")
	}
}

func TestRandomRanges(t *testing.T) {
	rng := NewRandom(42)

	t.Run("IntRange", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := rng.IntRange(4, 12)
			if v < 4 || v > 12 {
				t.Errorf("IntRange(4, 12) returned %d", v)
			}
		}
	})

	t.Run("Float64Range", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := rng.Float64Range(0.65, 1.05)
			if v < 0.65 || v >= 1.05 {
				t.Errorf("Float64Range(0.65, 1.05) returned %f", v)
			}
		}
	})
}

func TestRandomProbability(t *testing.T) {
	rng := NewRandom(42)

	for i := 0; i < 100; i++ {
		if rng.Probability(0) {
			t.Error("Probability(0) returned true")
		}
		if !rng.Probability(1) {
			t.Error("Probability(1) returned false")
		}
	}

	trueCount := 0
	iterations := 10000
	for i := 0; i < iterations; i++ {
		if rng.Probability(0.5) {
			trueCount++
		}
	}
	ratio := float64(trueCount) / float64(iterations)
	if ratio < 0.45 || ratio > 0.55 {
		t.Errorf("Probability(0.5) returned %.2f%% true, expected ~50%%", ratio*100)
	}
}

func TestRandomWeightedPick(t *testing.T) {
	rng := NewRandom(42)

	t.Run("skewed", func(t *testing.T) {
		weights := []float64{0.001, 0.001, 0.001, 0.997}
		counts := make([]int, len(weights))
		for i := 0; i < 10000; i++ {
			counts[rng.WeightedPick(weights)]++
		}
		if counts[3] < 9000 {
			t.Errorf("expected index 3 to be picked >9000 times, got %d", counts[3])
		}
	})

	t.Run("zero weight never picked", func(t *testing.T) {
		weights := []float64{0, 1, 0}
		for i := 0; i < 1000; i++ {
			if idx := rng.WeightedPick(weights); idx != 1 {
				t.Fatalf("expected index 1, got %d", idx)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		if idx := rng.WeightedPick(nil); idx != -1 {
			t.Errorf("expected -1 for empty weights, got %d", idx)
		}
	})
}

func TestRandomPoisson(t *testing.T) {
	rng := NewRandom(7)

	if v := rng.Poisson(0); v != 0 {
		t.Errorf("Poisson(0) returned %d", v)
	}

	sum := 0
	iterations := 20000
	for i := 0; i < iterations; i++ {
		v := rng.Poisson(3)
		if v < 0 {
			t.Fatalf("Poisson returned negative count %d", v)
		}
		sum += v
	}
	mean := float64(sum) / float64(iterations)
	if math.Abs(mean-3) > 0.1 {
		t.Errorf("Poisson(3) mean = %.3f, expected ~3", mean)
	}
}

func TestRandomBeta(t *testing.T) {
	rng := NewRandom(11)

	tests := []struct {
		a, b float64
	}{
		{2, 5},
		{1.5, 6},
		{2, 4},
	}

	for _, tt := range tests {
		sum := 0.0
		iterations := 20000
		for i := 0; i < iterations; i++ {
			v := rng.Beta(tt.a, tt.b)
			if v < 0 || v > 1 {
				t.Fatalf("Beta(%.1f, %.1f) returned %f outside [0,1]", tt.a, tt.b, v)
			}
			sum += v
		}
		mean := sum / float64(iterations)
		want := tt.a / (tt.a + tt.b)
		if math.Abs(mean-want) > 0.01 {
			t.Errorf("Beta(%.1f, %.1f) mean = %.4f, expected ~%.4f", tt.a, tt.b, mean, want)
		}
	}
}

func TestRandomSample(t *testing.T) {
	rng := NewRandom(3)

	idx := rng.Sample(100, 40)
	if len(idx) != 40 {
		t.Fatalf("Sample(100, 40) returned %d indexes", len(idx))
	}
	seen := make(map[int]bool)
	for _, i := range idx {
		if i < 0 || i >= 100 {
			t.Errorf("index %d out of range", i)
		}
		if seen[i] {
			t.Errorf("index %d sampled twice", i)
		}
		seen[i] = true
	}

	if got := rng.Sample(5, 10); len(got) != 5 {
		t.Errorf("Sample(5, 10) should cap at 5, got %d", len(got))
	}
	if got := rng.Sample(5, 0); got != nil {
		t.Errorf("Sample(5, 0) should be nil, got %v", got)
	}
}

func TestClipAndRound(t *testing.T) {
	if v := Clip(0.7, 0, 0.6); v != 0.6 {
		t.Errorf("Clip(0.7, 0, 0.6) = %f", v)
	}
	if v := Clip(-0.1, 0, 0.6); v != 0 {
		t.Errorf("Clip(-0.1, 0, 0.6) = %f", v)
	}
	if v := Round(3.14159, 2); v != 3.14 {
		t.Errorf("Round(3.14159, 2) = %f", v)
	}
	if v := Round(2.5555, 3); v != 2.556 {
		t.Errorf("Round(2.5555, 3) = %f", v)
	}
}
