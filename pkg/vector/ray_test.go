package vector

import (
	"errors"
	"math"
	"testing"
)

func TestNewRay_Valid(t *testing.T) {
	r, err := NewRay(New(0, 0, 0), New(1, 0, 0))
	if err != nil {
		t.Fatalf("NewRay() error = %v", err)
	}
	if got := r.At(2); got != (Vec3{2, 0, 0}) {
		t.Errorf("At(2) = %v, want {2 0 0}", got)
	}
}

func TestNewRay_RejectsZeroDirection(t *testing.T) {
	_, err := NewRay(New(0, 0, 0), New(0, 0, 0))
	if !errors.Is(err, ErrDegenerateRay) {
		t.Errorf("error = %v, want ErrDegenerateRay", err)
	}
}

func TestNewRay_RejectsNonFinite(t *testing.T) {
	_, err := NewRay(New(0, 0, 0), New(1, 0, math.Inf(1)))
	if !errors.Is(err, ErrDegenerateRay) {
		t.Errorf("error = %v, want ErrDegenerateRay", err)
	}
}
