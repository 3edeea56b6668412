package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecAlmostEqual(a, b mgl64.Vec2, tol float64) bool {
	return almostEqual(a.X(), b.X(), tol) && almostEqual(a.Y(), b.Y(), tol)
}

type recordLogger struct {
	lines []string
}

func (r *recordLogger) Logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func mustBody(pos mgl64.Vec2, radius float64) Body {
	b, err := NewBody(pos, radius, 0)
	if err != nil {
		panic(err)
	}
	return b
}

func mustWall(p1, p2 mgl64.Vec2, thickness float64) Wall {
	w, err := NewWall(p1, p2, thickness)
	if err != nil {
		panic(err)
	}
	return w
}
