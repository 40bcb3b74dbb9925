package dice

import (
	"errors"
	"slices"
	"testing"
)

func TestLex(t *testing.T) {
	t.Parallel()

	tok := func(k Kind, s string) Token { return Token{k, s} }

	tests := []struct {
		in   string
		want []Token
	}{
		{"", nil},
		{"   ", nil},
		{"D", []Token{tok(Die, "D")}},
		{"d", []Token{tok(Die, "D")}},
		{"+", []Token{tok(Plus, "+")}},
		{"-", []Token{tok(Minus, "-")}},
		{"01", []Token{tok(Digits, "01")}},
		{"1d4", []Token{tok(Digits, "1"), tok(Die, "D"), tok(Digits, "4")}},
		{"1 + 4", []Token{tok(Digits, "1"), tok(Plus, "+"), tok(Digits, "4")}},
		{"-5", []Token{tok(Digits, "-5")}},
		{"-5+3", []Token{tok(Digits, "-5"), tok(Plus, "+"), tok(Digits, "3")}},
		{"3+-5", []Token{tok(Digits, "3"), tok(Plus, "+"), tok(Digits, "-5")}},
		{"3-5", []Token{tok(Digits, "3"), tok(Digits, "-5")}},
		{"1d6-3", []Token{tok(Digits, "1"), tok(Die, "D"), tok(Digits, "6"), tok(Digits, "-3")}},
		{"2x d?6", []Token{tok(Digits, "2"), tok(Die, "D"), tok(Digits, "6")}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := Lex(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Lex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		notation string
		roll     Roller
		want     Result
	}{
		{"", Highest, Result{}},
		{"1d4", Highest, Result{"1D4(4)", 4, 1, 4}},
		{"1d1", Lowest, Result{"1D1(1)", 1, 1, 1}},
		{"1d1", Highest, Result{"1D1(1)", 1, 1, 1}},
		{"7", Highest, Result{"7", 7, 7, 7}},
		{"+ 1D1 1D2 1D3 1D4 1D5", Highest, Result{"+ 1D1(1) 1D2(2) 1D3(3) 1D4(4) 1D5(5)", 15, 5, 15}},
		{"+ 1 1", Highest, Result{"+ 1 1", 2, 2, 2}},
		{"- 1d4 1", Lowest, Result{"- 1D4(1) 1", 0, 0, 3}},
		{"+ 1 + 2 3", Highest, Result{"+ 1 + 2 3", 6, 6, 6}},
		{"+ 1d4", Highest, Result{"+ 1D4(4)", 4, 1, 4}},
		{"- 5", Highest, Result{"- 5", 5, 5, 5}},
		{"- 1d4", Lowest, Result{"- 1D4(1)", 1, 1, 4}},
		{"2d6+3", Highest, Result{"2D6(12) + 3", 15, 5, 15}},
		{"1d6-3", Lowest, Result{"1D6(1) -3", -2, -2, 3}},
		{"1d6 - 2", Highest, Result{"1D6(6) - 2", 4, -1, 4}},
		{"3-5", Highest, Result{"3 -5", -2, -2, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()

			got, err := Roll(tt.notation, tt.roll)
			if err != nil {
				t.Fatalf("Roll(%q) error: %v", tt.notation, err)
			}

			if got != tt.want {
				t.Errorf("Roll(%q) = %+v, want %+v", tt.notation, got, tt.want)
			}
		})
	}
}

func TestRoll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		notation string
		want     error
	}{
		{"+", ErrSyntax},
		{"d6", ErrSyntax},
		{"2d6+", ErrSyntax},
		{"1d6 d", ErrSyntax},
		{"1d0", ErrRange},
		{"-1d6", ErrRange},
		{"99999999999999999999", ErrRange},
		{"2d9223372036854775807", ErrRange},
		{"999999999999d1", ErrRange},
		{"10001d1", ErrRange},
		{"9223372036854775807 + 1", ErrRange},
		{"+ 9223372036854775807 1", ErrRange},
		{"-9223372036854775807 - 2", ErrRange},
		{"10000d922337203685478", ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()

			if _, err := Roll(tt.notation, Highest); !errors.Is(err, tt.want) {
				t.Errorf("Roll(%q) error = %v, want %v", tt.notation, err, tt.want)
			}
		})
	}
}

func TestRoll_BoundsHoldForRandomRolls(t *testing.T) {
	t.Parallel()

	roll := Seeded(42)

	for range 200 {
		r, err := Roll("+ 3d6 2d4 1", roll)
		if err != nil {
			t.Fatal(err)
		}

		if r.Value < r.Min || r.Value > r.Max {
			t.Fatalf("value %d outside [%d, %d]", r.Value, r.Min, r.Max)
		}

		if r.Min != 6 || r.Max != 27 {
			t.Fatalf("bounds = [%d, %d], want [6, 27]", r.Min, r.Max)
		}
	}
}
