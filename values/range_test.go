package values

import "testing"

// rng builds a numeric range; brackets follow FEEL syntax.
func rng(startOpen bool, start int64, end int64, endOpen bool) *Range {
	return &Range{
		StartOpen: startOpen,
		Start:     NewNumberFromInt(start),
		EndOpen:   endOpen,
		End:       NewNumberFromInt(end),
	}
}

func closed(start, end int64) *Range { return rng(false, start, end, false) }

func TestRangePosition(t *testing.T) {
	r := rng(true, 5, 8, false) // (5..8]
	cases := []struct {
		p    int64
		want int
	}{
		{4, -1},
		{5, -1},
		{6, 0},
		{8, 0},
		{9, 1},
	}
	for _, tc := range cases {
		if got := r.Position(NewNumberFromInt(tc.p)); got != tc.want {
			t.Errorf("(5..8].Position(%d) = %d, want %d", tc.p, got, tc.want)
		}
	}

	half := rng(false, 5, 8, true) // [5..8)
	if !half.Contains(NewNumberFromInt(5)) || half.Contains(NewNumberFromInt(8)) {
		t.Error("[5..8) must contain 5 and not 8")
	}
}

// Containment is monotone: once a point on one side is out, every
// point further out stays out.
func TestRangeContainsMonotone(t *testing.T) {
	r := rng(true, 10, 20, false)
	inside := false
	for p := int64(0); p <= 30; p++ {
		now := r.Contains(NewNumberFromInt(p))
		if inside && !now {
			for q := p; q <= 30; q++ {
				if r.Contains(NewNumberFromInt(q)) {
					t.Fatalf("containment regained at %d after leaving at %d", q, p)
				}
			}
			return
		}
		if now {
			inside = true
		}
	}
}

func TestRangeBeforeAfter(t *testing.T) {
	cases := []struct {
		a, b *Range
		op   string
		want bool
	}{
		{rng(false, 1, 5, true), closed(5, 10), "before", true},
		{rng(false, 1, 5, true), rng(true, 5, 10, false), "before", true},
		{closed(1, 5), closed(5, 10), "before", false},
		{closed(5, 10), rng(false, 1, 5, true), "after", true},
		{rng(true, 5, 10, false), rng(false, 1, 5, true), "after", true},
		{closed(5, 10), closed(1, 5), "after", false},
	}
	for _, tc := range cases {
		var got bool
		if tc.op == "before" {
			got = tc.a.Before(tc.b)
		} else {
			got = tc.a.After(tc.b)
		}
		if got != tc.want {
			t.Errorf("%s.%s(%s) = %v, want %v", tc.a, tc.op, tc.b, got, tc.want)
		}
	}
}

func TestRangeMeets(t *testing.T) {
	if !closed(1, 5).Meets(closed(5, 10)) {
		t.Error("[1..5] meets [5..10]")
	}
	if closed(1, 3).Meets(closed(4, 6)) {
		t.Error("[1..3] must not meet [4..6]")
	}
	if closed(1, 5).Meets(rng(true, 5, 8, false)) {
		t.Error("[1..5] must not meet (5..8]")
	}
}

func TestRangeOverlaps(t *testing.T) {
	if !closed(1, 5).OverlapsBefore(closed(4, 10)) {
		t.Error("[1..5] overlaps before [4..10]")
	}
	if closed(1, 3).OverlapsBefore(rng(true, 3, 5, false)) {
		t.Error("[1..3] must not overlap before (3..5]")
	}
	if rng(false, 1, 5, true).OverlapsBefore(closed(5, 10)) {
		t.Error("[1..5) must not overlap before [5..10]")
	}
	if !rng(false, 1, 5, true).OverlapsBefore(rng(true, 3, 8, false)) {
		t.Error("[1..5) overlaps before (3..8]")
	}
	if !closed(4, 10).OverlapsAfter(closed(1, 5)) {
		t.Error("[4..10] overlaps after [1..5]")
	}
	if closed(3, 5).OverlapsAfter(rng(false, 1, 3, true)) {
		t.Error("[3..5] must not overlap after [1..3)")
	}
}

func TestRangeIncludes(t *testing.T) {
	if !closed(1, 10).Includes(closed(4, 6)) {
		t.Error("[1..10] includes [4..6]")
	}
	if !closed(1, 10).Includes(rng(false, 1, 5, true)) {
		t.Error("[1..10] includes [1..5)")
	}
	if rng(true, 5, 8, false).Includes(rng(false, 1, 5, true)) {
		t.Error("(5..8] must not include [1..5)")
	}
	if !rng(true, 1, 10, false).Includes(rng(true, 1, 5, false)) {
		t.Error("(1..10] includes (1..5]")
	}
}

func TestRangeStartsFinishes(t *testing.T) {
	if !closed(1, 5).StartedBy(NewNumberFromInt(1)) {
		t.Error("[1..5] started by 1")
	}
	if rng(true, 1, 8, false).StartedBy(NewNumberFromInt(1)) {
		t.Error("(1..8] must not be started by 1")
	}
	if !closed(1, 10).StartedByRange(closed(1, 5)) {
		t.Error("[1..10] started by [1..5]")
	}
	if closed(1, 10).StartedByRange(rng(true, 1, 5, false)) {
		t.Error("[1..10] must not be started by (1..5] (boundary flags differ)")
	}
	if !closed(1, 5).FinishedBy(NewNumberFromInt(5)) {
		t.Error("[1..5] finished by 5")
	}
	if !closed(1, 5).FinishedByRange(closed(3, 5)) {
		t.Error("[1..5] finished by [3..5]")
	}
	if closed(1, 5).FinishedByRange(rng(false, 3, 5, true)) {
		t.Error("[1..5] must not be finished by [3..5)")
	}
}

func TestRangeStringForms(t *testing.T) {
	if got := rng(true, 1, 5, false).String(); got != "(1..5]" {
		t.Errorf("got %q", got)
	}
	if got := rng(false, 1, 5, true).String(); got != "[1..5)" {
		t.Errorf("got %q", got)
	}
}

func TestRangeOverStrings(t *testing.T) {
	r := &Range{Start: String("a"), End: String("z")}
	if !r.Contains(String("c")) {
		t.Error(`"c" in ["a".."z"]`)
	}
	half := &Range{Start: String("a"), End: String("f"), EndOpen: true}
	if half.Contains(String("f")) {
		t.Error(`"f" not in ["a".."f")`)
	}
}
