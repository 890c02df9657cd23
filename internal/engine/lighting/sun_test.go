package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float64
		elevation float64
		want      mgl32.Vec3
	}{
		{"horizon south", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"horizon east", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"zenith", 123, 90, mgl32.Vec3{0, 1, 0}},
		{"half up", 180, 30, mgl32.Vec3{0, 0.5, float32(-math.Sqrt(3) / 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if got.Sub(tt.want).Len() > 1e-6 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if math.Abs(float64(got.Len())-1) > 1e-6 {
				t.Errorf("expected unit vector, got length %f", got.Len())
			}
		})
	}
}
