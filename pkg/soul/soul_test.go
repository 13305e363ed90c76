package soul

import "testing"

func TestSplitConservesValue(t *testing.T) {
	for s := Lesser; s <= Grand; s++ {
		a, b, ok := s.Split()
		if !ok {
			t.Fatalf("%s did not split", s)
		}
		if a.Value()+b.Value() != s.Value() {
			t.Errorf("split of %s loses value: %s (%d) + %s (%d) != %d",
				s, a, a.Value(), b, b.Value(), s.Value())
		}
		if a < b {
			t.Errorf("split of %s returned parts out of order: %s, %s", s, a, b)
		}
	}
}

func TestSplitUnsplittable(t *testing.T) {
	for _, s := range []Size{None, Petty, Black} {
		if _, _, ok := s.Split(); ok {
			t.Errorf("%s reported as splittable", s)
		}
	}
}

func TestParseSizeRoundTrip(t *testing.T) {
	for s := None; s <= Black; s++ {
		parsed, err := ParseSize(s.String())
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("ParseSize(%q) = %v, want %v", s.String(), parsed, s)
		}
	}
	if _, err := ParseSize("gargantuan"); err == nil {
		t.Error("ParseSize accepted an unknown name")
	}
}

func TestParseCapacityRoundTrip(t *testing.T) {
	for c := CapPetty; c <= CapBlack; c++ {
		parsed, err := ParseCapacity(c.String())
		if err != nil {
			t.Fatalf("ParseCapacity(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseCapacity(%q) = %v, want %v", c.String(), parsed, c)
		}
	}
	if _, err := ParseCapacity("colossal"); err == nil {
		t.Error("ParseCapacity accepted an unknown name")
	}
}

func TestCapacityConversions(t *testing.T) {
	cases := []struct {
		capacity     Capacity
		toSize       Size
		maxContained Size
		holdsBlack   bool
	}{
		{CapPetty, Petty, Petty, false},
		{CapCommon, Common, Common, false},
		{CapGrand, Grand, Grand, false},
		{CapDual, Grand, Black, true},
		{CapBlack, Black, Black, true},
	}
	for _, c := range cases {
		if got := c.capacity.ToSize(); got != c.toSize {
			t.Errorf("%s.ToSize() = %s, want %s", c.capacity, got, c.toSize)
		}
		if got := c.capacity.MaxContained(); got != c.maxContained {
			t.Errorf("%s.MaxContained() = %s, want %s", c.capacity, got, c.maxContained)
		}
		if got := c.capacity.HoldsBlack(); got != c.holdsBlack {
			t.Errorf("%s.HoldsBlack() = %t, want %t", c.capacity, got, c.holdsBlack)
		}
	}
}

func TestCapacityOf(t *testing.T) {
	if got := CapacityOf(Black); got != CapBlack {
		t.Errorf("CapacityOf(Black) = %s", got)
	}
	for s := Petty; s <= Grand; s++ {
		if got := CapacityOf(s); got.ToSize() != s {
			t.Errorf("CapacityOf(%s) = %s, does not hold its own size", s, got)
		}
	}
}

func TestIsWhite(t *testing.T) {
	for s := Petty; s <= Grand; s++ {
		if !s.IsWhite() {
			t.Errorf("%s not white", s)
		}
	}
	if None.IsWhite() || Black.IsWhite() {
		t.Error("none or black reported as white")
	}
}
