package trit

import "testing"

func TestPascalRoundTrip(t *testing.T) {
	for n := int64(0); n <= 2000; n++ {
		enc := Encode(n)
		got, consumed, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) returned error: %v", n, err)
		}
		if got != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, got)
		}
		if consumed != len(enc) {
			t.Fatalf("Decode(Encode(%d)) consumed %d trits, encoding is %d long", n, consumed, len(enc))
		}
	}
}

func TestPascalTrailingDataIgnored(t *testing.T) {
	enc := Encode(42)
	padded := append(append([]Trit{}, enc...), 1, -1, 0, 1)
	got, consumed, err := Decode(padded)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got != 42 {
		t.Fatalf("Decode(padded) = %d, want 42", got)
	}
	if consumed != len(enc) {
		t.Fatalf("Decode(padded) consumed %d, want %d", consumed, len(enc))
	}
}

func TestPascalMalformedPrefix(t *testing.T) {
	cases := [][]Trit{
		{},
		{1},
		{1, 1, 1},
		{1, 0}, // claims 1 value trit, none present
	}
	for _, c := range cases {
		if _, _, err := Decode(c); err != ErrMalformedPrefix {
			t.Errorf("Decode(%v) = err %v, want ErrMalformedPrefix", c, err)
		}
	}
}

func TestPascalZero(t *testing.T) {
	enc := Encode(0)
	if len(enc) != 1 || enc[0] != 0 {
		t.Fatalf("Encode(0) = %v, want [0]", enc)
	}
}
