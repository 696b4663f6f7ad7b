package tableview

import "testing"

func kinds(events []Transition) []TransitionKind {
	out := make([]TransitionKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestSeedUsesViewport(t *testing.T) {
	table := mustBuild(t, scenarioSource())

	s := Seed(table, 100)
	if s.Top != 0 || s.Bottom != 2 || s.Offset != 0 {
		t.Errorf("Expected seed {0 2 0}, got %+v", s)
	}
}

func TestUpdateScrollForward(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := Seed(table, 100)

	next, events := s.Update(table, 140, 100)
	if next.Top != 4 || next.Bottom != 5 || next.Offset != 140 {
		t.Errorf("Expected state {4 5 140}, got %+v", next)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %v", events)
	}
	if events[0].Kind != ExitTop || events[0].Index != 0 || events[0].Segment.Kind != KindHeader {
		t.Errorf("Expected exit-top of header 0, got %v", events[0])
	}
	if events[1].Kind != EnterBottom || events[1].Index != 5 || events[1].Segment.Key() != "f_1_0" {
		t.Errorf("Expected enter-bottom of footer 1, got %v", events[1])
	}
}

func TestUpdateScrollBackward(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := VisibilityState{Top: 4, Bottom: 5, Offset: 140}

	next, events := s.Update(table, 0, 100)
	if next.Top != 0 || next.Bottom != 2 {
		t.Errorf("Expected state {0 2 0}, got %+v", next)
	}
	got := kinds(events)
	if len(got) != 2 || got[0] != EnterTop || got[1] != ExitBottom {
		t.Fatalf("Expected [enter-top exit-bottom], got %v", got)
	}
	if events[0].Index != 0 {
		t.Errorf("enter-top should name the new top segment, got %d", events[0].Index)
	}
	if events[1].Index != 5 {
		t.Errorf("exit-bottom should name the old bottom segment, got %d", events[1].Index)
	}
}

func TestUpdateSameIndicesRecordsOffset(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := Seed(table, 100)

	next, events := s.Update(table, 5, 100)
	if len(events) != 0 {
		t.Errorf("Expected no events inside the same segments, got %v", events)
	}
	if next.Offset != 5 || next.Top != 0 || next.Bottom != 2 {
		t.Errorf("Expected {0 2 5}, got %+v", next)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := Seed(table, 100)

	s, first := s.Update(table, 140, 100)
	if len(first) == 0 {
		t.Fatal("Expected events on the first update")
	}
	again, second := s.Update(table, 140, 100)
	if len(second) != 0 {
		t.Errorf("Expected no events on repeated update, got %v", second)
	}
	if again != s {
		t.Errorf("Expected unchanged state, got %+v vs %+v", again, s)
	}
}

func TestUpdateViewportChangeWithoutScroll(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := Seed(table, 100)

	// Same offset, taller viewport: indices change but nothing moved.
	next, events := s.Update(table, 0, 200)
	if len(events) != 0 {
		t.Errorf("Expected no events without scrolling, got %v", events)
	}
	if next.Bottom != 4 {
		t.Errorf("Expected bottom index 4 after resize, got %d", next.Bottom)
	}
}

func TestUpdateReportsOnlyBoundarySegments(t *testing.T) {
	// Ten rows of 10: a jump of 50 skips several segments per edge.
	rows := make([]int, 10)
	for i := range rows {
		rows[i] = 10
	}
	table := mustBuild(t, &fakeSource{sections: []sectionSpec{{rows: rows}}})
	s := Seed(table, 30)

	_, events := s.Update(table, 50, 30)
	got := kinds(events)
	if len(got) != 2 || got[0] != ExitTop || got[1] != EnterBottom {
		t.Fatalf("Expected exactly one event per edge, got %v", events)
	}
	if events[0].Index != 0 || events[1].Index != 8 {
		t.Errorf("Expected exit-top 0 and enter-bottom 8, got %d and %d", events[0].Index, events[1].Index)
	}
}

func TestUpdateOverscroll(t *testing.T) {
	table := mustBuild(t, scenarioSource())
	s := VisibilityState{Top: 4, Bottom: 5, Offset: 200}

	// Past the end: both edges clamp to the last segment.
	next, events := s.Update(table, 400, 100)
	if next.Top != 5 || next.Bottom != 5 {
		t.Errorf("Expected {5 5}, got %+v", next)
	}
	if len(events) != 1 || events[0].Kind != ExitTop || events[0].Index != 4 {
		t.Errorf("Expected exit-top of segment 4, got %v", events)
	}
}
