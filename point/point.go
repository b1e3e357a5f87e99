package point

import "fmt"

// Point is used both for pixel coordinates and for coordinates on the complex plane
type Point struct {
	X float64
	Y float64
}

func New(x float64, y float64) Point {
	return Point{X: x, Y: y}
}

func FromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Mul multiplies component-wise
func (p Point) Mul(o Point) Point {
	return Point{X: p.X * o.X, Y: p.Y * o.Y}
}

// Div divides component-wise
func (p Point) Div(o Point) Point {
	return Point{X: p.X / o.X, Y: p.Y / o.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Conj returns the complex conjugate when the point is read as x + yi
func (p Point) Conj() Point {
	return Point{X: p.X, Y: -p.Y}
}

func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
