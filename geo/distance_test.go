package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64 // meters
		tolerance              float64 // relative
	}{
		{
			name: "identical coordinates",
			lat1: 30.4213, lng1: -87.2169,
			lat2: 30.4213, lng2: -87.2169,
			want: 0, tolerance: 0,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			want: 111195, tolerance: 0.001,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 51.5074, lng2: -0.1278,
			want: 343500, tolerance: 0.01,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.5,
			lat2: 0, lng2: -179.5,
			want: 111195, tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if tt.want == 0 {
				if got != 0 {
					t.Fatalf("Expected exactly 0, got %f", got)
				}
				return
			}
			if math.Abs(got-tt.want)/tt.want > tt.tolerance {
				t.Fatalf("Expected ~%f, got %f", tt.want, got)
			}
		})
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{30.4213, -87.2169, 30.43, -87.21},
		{48.8566, 2.3522, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, p := range pairs {
		ab := DistanceMeters(p[0], p[1], p[2], p[3])
		ba := DistanceMeters(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("Expected symmetric distance, got %f and %f", ab, ba)
		}
		if ab < 0 {
			t.Errorf("Expected non-negative distance, got %f", ab)
		}
	}
}
