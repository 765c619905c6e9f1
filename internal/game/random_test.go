package game

import "testing"

func TestSeededRNGDeterministic(t *testing.T) {
	rngA := seededRNG(12345)
	rngB := seededRNG(12345)

	for i := 0; i < 20; i++ {
		gotA := rngA.Float64()
		gotB := rngB.Float64()
		if gotA != gotB {
			t.Fatalf("expected deterministic sequence, mismatch at %d: %f != %f", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	a := seedWord(99, "a")
	b := seedWord(99, "b")
	if a == b {
		t.Fatalf("expected different seed words for different salts")
	}
}

func TestSeededSourceStaysInUnitRange(t *testing.T) {
	src := SeededSource(7)
	for i := 0; i < 500; i++ {
		v := src.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("expected value in [0,1), got %f", v)
		}
	}
}
