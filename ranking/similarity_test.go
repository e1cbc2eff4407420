package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMinMaxNormalize(t *testing.T) {
	t.Run("spread values", func(t *testing.T) {
		got := minMaxNormalize([]float64{0.2, 0.8, 0.5})
		assert.InDelta(t, 0, got[0], 1e-6)
		assert.InDelta(t, 1, got[1], 1e-6)
		assert.InDelta(t, 0.5, got[2], 1e-6)
	})

	t.Run("flat values normalize to zero", func(t *testing.T) {
		got := minMaxNormalize([]float64{0.7, 0.7, 0.7})
		for _, v := range got {
			assert.Zero(t, v)
		}
	})

	t.Run("single value is zero", func(t *testing.T) {
		got := minMaxNormalize([]float64{0.9})
		assert.Equal(t, []float64{0}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, minMaxNormalize(nil))
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, clamp(-2, 0, 1))
	assert.Equal(t, 1.0, clamp(7, 0, 1))
}
