// pkg/physics/circle_test.go
package physics

import (
	"math"
	"testing"
)

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		circle1  Circle
		circle2  Circle
		expected bool
	}{
		{
			name:     "circles_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 10, Y: 0}, Radius: 5},
			expected: false, // Distance equals sum of radii, collision logic uses <
		},
		{
			name:     "circles_overlapping",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 5, Y: 0}, Radius: 5},
			expected: true,
		},
		{
			name:     "circles_same_position",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 3},
			circle2:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 2},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.circle1.Collides(tt.circle2); got != tt.expected {
				t.Errorf("Collides() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCircle_Contains(t *testing.T) {
	c := Circle{Center: Vector2D{X: 1, Y: 1}, Radius: 2}
	if !c.Contains(Vector2D{X: 1, Y: 3}) {
		t.Error("point on the boundary should be contained")
	}
	if !c.Contains(Vector2D{X: 1, Y: 1}) {
		t.Error("center should be contained")
	}
	if c.Contains(Vector2D{X: 3.1, Y: 1}) {
		t.Error("outside point should not be contained")
	}
}

func TestLimitTurn(t *testing.T) {
	north := Vector2D{X: 0, Y: 2}
	tests := []struct {
		name     string
		current  Vector2D
		desired  Vector2D
		maxAngle float64
		expected Vector2D
	}{
		{
			name:     "within_limit",
			current:  north,
			desired:  Vector2D{X: 3, Y: 3},
			maxAngle: math.Pi / 2,
			expected: Vector2D{X: 3, Y: 3},
		},
		{
			name:     "clockwise_limited",
			current:  north,
			desired:  Vector2D{X: 4, Y: 0},
			maxAngle: math.Pi / 4,
			expected: Vector2D{X: 4 / math.Sqrt2, Y: 4 / math.Sqrt2},
		},
		{
			name:     "counterclockwise_limited",
			current:  north,
			desired:  Vector2D{X: -1, Y: 0},
			maxAngle: math.Pi / 4,
			expected: Vector2D{X: -1 / math.Sqrt2, Y: 1 / math.Sqrt2},
		},
		{
			name:     "stopped_body_turns_freely",
			current:  Vector2D{},
			desired:  Vector2D{X: 0, Y: -3},
			maxAngle: 0.1,
			expected: Vector2D{X: 0, Y: -3},
		},
		{
			name:     "zero_desired",
			current:  north,
			desired:  Vector2D{},
			maxAngle: 0.1,
			expected: Vector2D{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LimitTurn(tt.current, tt.desired, tt.maxAngle)
			if !got.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("LimitTurn() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
