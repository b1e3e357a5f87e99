package fractal

import (
	"fmt"
	"strings"
)

// Term is coefficient·z^power, negative powers are allowed
type Term struct {
	Coefficient complex128
	Power       int
}

// Polynomial is a sum of terms, evaluated generically so presets stay plain data
type Polynomial []Term

func (p Polynomial) Eval(z complex128) complex128 {
	var sum complex128
	for _, t := range p {
		if t.Power == 0 {
			sum += t.Coefficient
			continue
		}
		sum += t.Coefficient * powi(z, t.Power)
	}
	return sum
}

func (p Polynomial) Derivative() Polynomial {
	derivative := make(Polynomial, 0, len(p))
	for _, t := range p {
		if t.Power == 0 {
			continue
		}
		derivative = append(derivative, Term{
			Coefficient: t.Coefficient * complex(float64(t.Power), 0),
			Power:       t.Power - 1,
		})
	}
	return derivative
}

func (p Polynomial) String() string {
	if len(p) == 0 {
		return "0"
	}
	terms := make([]string, len(p))
	for i, t := range p {
		terms[i] = fmt.Sprintf("%v·z^%d", t.Coefficient, t.Power)
	}
	return strings.Join(terms, " + ")
}
