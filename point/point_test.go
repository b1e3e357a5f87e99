package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := New(1.5, -2)
	b := New(0.5, 4)

	assert.Equal(t, New(2, 2), a.Add(b))
	assert.Equal(t, New(1, -6), a.Sub(b))
	assert.Equal(t, New(0.75, -8), a.Mul(b))
	assert.Equal(t, New(3, -0.5), a.Div(b))
	assert.Equal(t, New(3, -4), a.Scale(2))
	assert.Equal(t, New(1.5, 2), a.Conj())
}

func TestComplex(t *testing.T) {
	p := New(0.9, 0.1)
	assert.Equal(t, complex(0.9, 0.1), p.Complex())
	assert.Equal(t, p, FromComplex(p.Complex()))
	assert.Equal(t, cmplxConj(p.Complex()), p.Conj().Complex())
}

func cmplxConj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}
