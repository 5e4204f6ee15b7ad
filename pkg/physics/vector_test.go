// pkg/physics/vector_test.go
package physics

import (
	"math"
	"math/rand/v2"
	"testing"
)

const tolerance = 1e-9

func TestVector2D_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected Vector2D
	}{
		{
			name:     "positive_vectors",
			v1:       Vector2D{X: 3, Y: 4},
			v2:       Vector2D{X: 1, Y: 2},
			expected: Vector2D{X: 4, Y: 6},
		},
		{
			name:     "mixed_signs",
			v1:       Vector2D{X: 5, Y: -3},
			v2:       Vector2D{X: -2, Y: 7},
			expected: Vector2D{X: 3, Y: 4},
		},
		{
			name:     "zero_vector",
			v1:       Vector2D{},
			v2:       Vector2D{X: 5, Y: -3},
			expected: Vector2D{X: 5, Y: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_SubScaleNegate(t *testing.T) {
	v := Vector2D{X: 5, Y: 7}
	if got := v.Sub(Vector2D{X: 2, Y: 3}); got != (Vector2D{X: 3, Y: 4}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := v.Scale(-2); got != (Vector2D{X: -10, Y: -14}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := v.Negate(); got != (Vector2D{X: -5, Y: -7}) {
		t.Errorf("Negate() = %v", got)
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected Vector2D
	}{
		{"unit_x", Vector2D{X: 1, Y: 0}, Vector2D{X: 1, Y: 0}},
		{"pythagorean", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"negative", Vector2D{X: -10, Y: 0}, Vector2D{X: -1, Y: 0}},
		{"zero_vector", Vector2D{}, Vector2D{}},
		{"below_epsilon", Vector2D{X: 1e-12, Y: -1e-12}, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if !result.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Normalize() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_NormalizeLengthIsZeroOrOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		v := Vector2D{X: (rng.Float64() - 0.5) * 1e4, Y: (rng.Float64() - 0.5) * 1e4}
		if i%100 == 0 {
			v = Vector2D{}
		}
		length := v.Normalize().Length()
		if v.IsZero() {
			if length != 0 {
				t.Fatalf("Normalize(%v) length = %v, expected 0", v, length)
			}
			continue
		}
		if math.Abs(length-1) > tolerance {
			t.Fatalf("Normalize(%v) length = %v, expected 1", v, length)
		}
	}
}

func TestVector2D_Truncate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		max      float64
		expected Vector2D
	}{
		{"longer_is_scaled", Vector2D{X: 6, Y: 8}, 5, Vector2D{X: 3, Y: 4}},
		{"shorter_is_unchanged", Vector2D{X: 1, Y: 1}, 5, Vector2D{X: 1, Y: 1}},
		{"exact_is_unchanged", Vector2D{X: 3, Y: 4}, 5, Vector2D{X: 3, Y: 4}},
		{"zero_limit", Vector2D{X: 3, Y: 4}, 0, Vector2D{}},
		{"zero_vector", Vector2D{}, 2, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Truncate(tt.max)
			if !result.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Truncate(%v) = %v, expected %v", tt.max, result, tt.expected)
			}
		})
	}
}

func TestVector2D_TruncateNeverExceedsLimit(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 1000; i++ {
		v := Vector2D{X: (rng.Float64() - 0.5) * 200, Y: (rng.Float64() - 0.5) * 200}
		limit := rng.Float64() * 100
		result := v.Truncate(limit)
		if result.Length() > limit+tolerance {
			t.Fatalf("Truncate(%v, %v) length = %v", v, limit, result.Length())
		}
		if v.Length() <= limit && result != v {
			t.Fatalf("Truncate(%v, %v) = %v, expected no-op", v, limit, result)
		}
	}
}

func TestVector2D_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		angle    float64
		expected Vector2D
	}{
		{"north_quarter_turn_is_east", Vector2D{X: 0, Y: 1}, math.Pi / 2, Vector2D{X: 1, Y: 0}},
		{"east_quarter_turn_is_south", Vector2D{X: 1, Y: 0}, math.Pi / 2, Vector2D{X: 0, Y: -1}},
		{"north_three_quarter_turn_is_west", Vector2D{X: 0, Y: 1}, 3 * math.Pi / 2, Vector2D{X: -1, Y: 0}},
		{"negative_angle_turns_counterclockwise", Vector2D{X: 0, Y: 1}, -math.Pi / 2, Vector2D{X: -1, Y: 0}},
		{"full_turn", Vector2D{X: 3, Y: 4}, 2 * math.Pi, Vector2D{X: 3, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Rotate(tt.angle)
			if !result.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Rotate(%v) = %v, expected %v", tt.angle, result, tt.expected)
			}
		})
	}
}

func TestVector2D_RotateMatchesCompassBearing(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 15 {
		rotated := Vector2D{X: 0, Y: 1}.Rotate(Deg2Rad(deg))
		if math.Abs(rotated.CompassBearing()-deg) > 1e-6 {
			t.Errorf("north rotated by %v° has bearing %v", deg, rotated.CompassBearing())
		}
	}
}

func TestVector2D_CompassBearing(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{"north", Vector2D{X: 0, Y: 1}, 0},
		{"east", Vector2D{X: 1, Y: 0}, 90},
		{"south", Vector2D{X: 0, Y: -1}, 180},
		{"west", Vector2D{X: -1, Y: 0}, 270},
		{"north_east", Vector2D{X: 1, Y: 1}, 45},
		{"north_west", Vector2D{X: -1, Y: 1}, 315},
		{"zero_vector", Vector2D{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.CompassBearing()
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("CompassBearing() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_Delta(t *testing.T) {
	north := Vector2D{X: 0, Y: 1}
	tests := []struct {
		name     string
		other    Vector2D
		unsigned float64
		signed   float64
	}{
		{"same_direction", Vector2D{X: 0, Y: 5}, 0, 0},
		{"east_is_clockwise", Vector2D{X: 2, Y: 0}, math.Pi / 2, math.Pi / 2},
		{"west_is_counterclockwise", Vector2D{X: -2, Y: 0}, math.Pi / 2, -math.Pi / 2},
		{"opposite", Vector2D{X: 0, Y: -1}, math.Pi, math.Pi},
		{"zero_vector", Vector2D{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := north.Delta(tt.other); math.Abs(got-tt.unsigned) > 1e-9 {
				t.Errorf("Delta() = %v, expected %v", got, tt.unsigned)
			}
			if got := north.SignedDelta(tt.other); math.Abs(got-tt.signed) > 1e-9 {
				t.Errorf("SignedDelta() = %v, expected %v", got, tt.signed)
			}
		})
	}
}

func TestDegreeConversions(t *testing.T) {
	if Deg2Rad(180) != math.Pi {
		t.Errorf("Deg2Rad(180) = %v", Deg2Rad(180))
	}
	if Rad2Deg(math.Pi/2) != 90 {
		t.Errorf("Rad2Deg(π/2) = %v", Rad2Deg(math.Pi/2))
	}
	if got := Rad2Deg(Deg2Rad(37.5)); math.Abs(got-37.5) > 1e-12 {
		t.Errorf("round trip = %v", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0}, {360, 0}, {370, 10}, {-90, 270}, {-720, 0}, {359.5, 359.5},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestFromCourse(t *testing.T) {
	v := FromCourse(90, 5)
	if !v.ApproxEqual(Vector2D{X: 5, Y: 0}, tolerance) {
		t.Errorf("FromCourse(90, 5) = %v", v)
	}
	v = FromCourse(225, math.Sqrt2)
	if !v.ApproxEqual(Vector2D{X: -1, Y: -1}, tolerance) {
		t.Errorf("FromCourse(225, √2) = %v", v)
	}
}
