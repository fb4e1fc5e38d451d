package fraction

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatStyle(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{StyleSimple, "3/4"},
		{StyleUnicode, "3⁄4"},
		{StyleLaTeX, `\frac{3}{4}`},
	}

	for _, tt := range tests {
		if got := FormatStyle(3, 4, tt.style); got != tt.want {
			t.Errorf("FormatStyle(3, 4, %d) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestFormatMixed(t *testing.T) {
	tests := []struct {
		whole, n, d int
		want        string
	}{
		{2, 3, 4, "2 3/4"},
		{0, 3, 4, "3/4"},
		{2, 0, 4, "2"},
	}

	for _, tt := range tests {
		if got := FormatMixed(tt.whole, tt.n, tt.d); got != tt.want {
			t.Errorf("FormatMixed(%d, %d, %d) = %q, want %q", tt.whole, tt.n, tt.d, got, tt.want)
		}
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		f    Fraction
		want string
	}{
		{New(5, 6), "5/6"},
		{New(2, 1), "2"},
		{New(0, 1), "0"},
		{New(-1, 2), "-1/2"},
		{New(1, -2), "-1/2"},
	}

	for _, tt := range tests {
		if got := FormatResult(tt.f); got != tt.want {
			t.Errorf("FormatResult(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Fraction
		wantErr bool
	}{
		{"3/4", New(3, 4), false},
		{" 3 / 4 ", New(3, 4), false},
		{"5", New(5, 1), false},
		{"-1/2", New(-1, 2), false},
		{"3/0", Fraction{}, true},
		{"a/4", Fraction{}, true},
		{"3/b", Fraction{}, true},
		{"1.5", Fraction{}, true},
		{"", Fraction{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFraction) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFraction", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMixed(t *testing.T) {
	tests := []struct {
		in      string
		want    MixedNumber
		wantErr bool
	}{
		{"2 3/4", MixedNumber{Whole: 2, Fraction: New(3, 4)}, false},
		{"3/4", MixedNumber{Fraction: New(3, 4)}, false},
		{"7", MixedNumber{Whole: 7, Fraction: New(0, 1)}, false},
		{"x 3/4", MixedNumber{}, true},
		{"2 3/0", MixedNumber{}, true},
		{"1 2 3/4", MixedNumber{}, true},
	}

	for _, tt := range tests {
		got, err := ParseMixed(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFraction) {
				t.Errorf("ParseMixed(%q) error = %v, want ErrInvalidFraction", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMixed(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMixed(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"simple", StyleSimple, false},
		{"", StyleSimple, false},
		{"Unicode", StyleUnicode, false},
		{" latex ", StyleLaTeX, false},
		{"mathml", StyleSimple, true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, %v; want %v (err %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
		if err == nil && got.String() != strings.ToLower(strings.TrimSpace(tt.in)) && tt.in != "" {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
