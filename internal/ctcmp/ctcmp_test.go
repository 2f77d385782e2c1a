package ctcmp

import "testing"

func TestEqualIdenticalBytes(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	if !Equal(a, b) {
		t.Fatal("expected equal")
	}
}

func TestEqualDifferentBytes(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 5}
	if Equal(a, b) {
		t.Fatal("expected unequal")
	}
}

func TestEqualDifferentLengths(t *testing.T) {
	if Equal([]byte{1, 2}, []byte{1, 2, 3}) {
		t.Fatal("expected unequal on length mismatch")
	}
}

func TestEqualEmptySlices(t *testing.T) {
	if !Equal(nil, []byte{}) {
		t.Fatal("expected nil and empty slice to compare equal")
	}
}
