package trigger

import "testing"

func TestParseFieldWildcard(t *testing.T) {
	t.Parallel()
	f, err := ParseField("*", 0, 59, false)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	if !f.IsWildcard() {
		t.Fatal("expected wildcard")
	}
	if !f.Match(0) || !f.Match(59) {
		t.Fatal("wildcard should match bounds")
	}
}

func TestParseFieldLiteral(t *testing.T) {
	t.Parallel()
	f, err := ParseField("15", 0, 59, false)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	if !f.Match(15) || f.Match(14) {
		t.Fatal("literal field matched wrong values")
	}
}

func TestParseFieldRange(t *testing.T) {
	t.Parallel()
	f, err := ParseField("9-17", 0, 23, false)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	for v := 9; v <= 17; v++ {
		if !f.Match(v) {
			t.Fatalf("range should match %d", v)
		}
	}
	if f.Match(8) || f.Match(18) {
		t.Fatal("range matched outside bounds")
	}
}

func TestParseFieldStep(t *testing.T) {
	t.Parallel()
	f, err := ParseField("*/15", 0, 59, false)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	for _, v := range []int{0, 15, 30, 45} {
		if !f.Match(v) {
			t.Fatalf("step should match %d", v)
		}
	}
	if f.Match(16) {
		t.Fatal("step matched non-multiple")
	}
}

func TestParseFieldRangedStep(t *testing.T) {
	t.Parallel()
	f, err := ParseField("1-10/3", 0, 59, false)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	for _, v := range []int{1, 4, 7, 10} {
		if !f.Match(v) {
			t.Fatalf("ranged-step should match %d", v)
		}
	}
	if f.Match(13) {
		t.Fatal("ranged-step matched beyond its hi bound")
	}
}

func TestParseFieldDowAlias(t *testing.T) {
	t.Parallel()
	f, err := ParseField("mon-fri", 0, 6, true)
	if err != nil {
		t.Fatalf("ParseField() error = %v", err)
	}
	for v := 0; v <= 4; v++ {
		if !f.Match(v) {
			t.Fatalf("mon-fri should match %d", v)
		}
	}
	if f.Match(5) || f.Match(6) {
		t.Fatal("mon-fri matched weekend")
	}
}

func TestParseFieldBadExpr(t *testing.T) {
	t.Parallel()
	if _, err := ParseField("", 0, 59, false); err == nil {
		t.Fatal("expected error for empty field")
	}
	if _, err := ParseField("70", 0, 59, false); err == nil {
		t.Fatal("expected error for out-of-range literal")
	}
	if _, err := ParseField("*/0", 0, 59, false); err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestMergeFieldWildcardAbsorption(t *testing.T) {
	t.Parallel()
	lit := Literal(5, 0, 59)
	m, err := mergeField(Wildcard(0, 59), lit)
	if err != nil {
		t.Fatalf("mergeField() error = %v", err)
	}
	if m != lit {
		t.Fatalf("mergeField() = %v, want %v", m, lit)
	}
}

func TestMergeFieldRangeAndStep(t *testing.T) {
	t.Parallel()
	m, err := mergeField(Range(9, 17, 0, 23), Step(2, 0, 23))
	if err != nil {
		t.Fatalf("mergeField() error = %v", err)
	}
	if !m.Match(9) || !m.Match(11) || m.Match(10) {
		t.Fatalf("merged ranged-step wrong: %v", m)
	}
}

func TestMergeFieldIncompatible(t *testing.T) {
	t.Parallel()
	_, err := mergeField(Literal(5, 0, 59), Literal(6, 0, 59))
	if err == nil {
		t.Fatal("expected ErrIncompatibleAnd")
	}
}

func TestDefaultMinMatchesOnlyMinimum(t *testing.T) {
	t.Parallel()
	f := DefaultMin(0, 59)
	if !f.Match(0) {
		t.Fatal("expected DefaultMin to match its minimum")
	}
	if f.Match(1) || f.Match(59) {
		t.Fatal("expected DefaultMin to match nothing but its minimum")
	}
}

// TestMergeFieldDefaultMinYieldsToStep guards the between(hours=(9,17)) &
// every(minutes=15) composition: a finer field implicitly defaulted by
// BetweenFields/OnCalendar must yield to a sibling's real constraint during
// And-merge instead of colliding with it.
func TestMergeFieldDefaultMinYieldsToStep(t *testing.T) {
	t.Parallel()
	step := Step(15, 0, 59)
	m, err := mergeField(DefaultMin(0, 59), step)
	if err != nil {
		t.Fatalf("mergeField() error = %v", err)
	}
	if m != step {
		t.Fatalf("mergeField() = %v, want %v", m, step)
	}

	m, err = mergeField(step, DefaultMin(0, 59))
	if err != nil {
		t.Fatalf("mergeField() error = %v", err)
	}
	if m != step {
		t.Fatalf("mergeField() = %v, want %v", m, step)
	}
}
