package fraction

import (
	"errors"
	"testing"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 0},
		{7, 0, 7},
		{0, 7, 7},
		{8, 12, 4},
		{12, 8, 4},
		{17, 5, 1},
		{-8, 12, 4},
		{8, -12, 4},
		{100, 75, 25},
	}

	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLCM(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{4, 6, 12},
		{2, 3, 6},
		{5, 5, 5},
		{1, 9, 9},
		{0, 9, 0},
		{-4, 6, 12},
	}

	for _, tt := range tests {
		got, err := LCM(tt.a, tt.b)
		if err != nil {
			t.Fatalf("LCM(%d, %d) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLCM_BothZero(t *testing.T) {
	_, err := LCM(0, 0)
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("LCM(0, 0) error = %v, want ErrDegenerate", err)
	}
}

func TestLCMTimesGCD(t *testing.T) {
	for a := 1; a <= 30; a++ {
		for b := 1; b <= 30; b++ {
			l, err := LCM(a, b)
			if err != nil {
				t.Fatalf("LCM(%d, %d) error: %v", a, b, err)
			}
			if l*GCD(a, b) != a*b {
				t.Errorf("LCM(%d,%d)*GCD(%d,%d) = %d, want %d", a, b, a, b, l*GCD(a, b), a*b)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		n, d    int
		wantErr bool
	}{
		{3, 4, false},
		{0, 4, false},
		{4, 4, false},
		{3, 0, true},
		{-3, 4, true},
		{3, -4, true},
	}

	for _, tt := range tests {
		err := Validate(tt.n, tt.d)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFraction) {
				t.Errorf("Validate(%d, %d) = %v, want ErrInvalidFraction", tt.n, tt.d, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Validate(%d, %d) = %v, want nil", tt.n, tt.d, err)
		}
	}
}
