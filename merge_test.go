package ftprime

import "testing"

func childrenEqual(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("children length mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("children mismatch: got %v want %v", got, want)
		}
	}
}

func TestMergeSegmentEmptyList(t *testing.T) {
	segs, err := MergeSegment(nil, 0.0, 1.0, 5, []int32{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Left != 0.0 || segs[0].Right != 1.0 || segs[0].Parent != 5 {
		t.Fatalf("unexpected segment: %+v", segs[0])
	}
	childrenEqual(t, segs[0].Children, []int32{1, 2})
}

func TestMergeSegmentNoOverlap(t *testing.T) {
	existing := []Segment{{0.0, 0.3, 5, []int32{1}}}
	segs, err := MergeSegment(existing, 0.3, 0.6, 5, []int32{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Right != segs[1].Left {
		t.Fatalf("expected adjacency, got %+v", segs)
	}
}

func TestMergeSegmentExactOverlap(t *testing.T) {
	existing := []Segment{{0.0, 0.5, 5, []int32{1}}}
	segs, err := MergeSegment(existing, 0.0, 0.5, 5, []int32{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 coalesced segment, got %d: %+v", len(segs), segs)
	}
	childrenEqual(t, segs[0].Children, []int32{1, 2})
}

func TestMergeSegmentDanglingLeft(t *testing.T) {
	existing := []Segment{{0.2, 0.6, 5, []int32{1}}}
	segs, err := MergeSegment(existing, 0.0, 0.6, 5, []int32{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %+v", segs)
	}
	if segs[0].Left != 0.0 || segs[0].Right != 0.2 {
		t.Fatalf("unexpected prefix segment: %+v", segs[0])
	}
	childrenEqual(t, segs[0].Children, []int32{2})
	childrenEqual(t, segs[1].Children, []int32{1, 2})
}

func TestMergeSegmentDanglingRight(t *testing.T) {
	existing := []Segment{{0.0, 0.8, 5, []int32{1}}}
	segs, err := MergeSegment(existing, 0.0, 0.5, 5, []int32{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %+v", segs)
	}
	childrenEqual(t, segs[0].Children, []int32{1, 2})
	if segs[1].Left != 0.5 || segs[1].Right != 0.8 {
		t.Fatalf("unexpected tail segment: %+v", segs[1])
	}
	childrenEqual(t, segs[1].Children, []int32{1})
}

func TestMergeSegmentInteriorOverlap(t *testing.T) {
	existing := []Segment{{0.0, 1.0, 5, []int32{1}}}
	segs, err := MergeSegment(existing, 0.3, 0.6, 5, []int32{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Left != 0.0 || segs[0].Right != 0.3 {
		t.Fatalf("unexpected segment 0: %+v", segs[0])
	}
	if segs[1].Left != 0.3 || segs[1].Right != 0.6 {
		t.Fatalf("unexpected segment 1: %+v", segs[1])
	}
	childrenEqual(t, segs[1].Children, []int32{1, 2})
	if segs[2].Left != 0.6 || segs[2].Right != 1.0 {
		t.Fatalf("unexpected segment 2: %+v", segs[2])
	}
}

func TestMergeSegmentParentMismatch(t *testing.T) {
	existing := []Segment{{0.0, 1.0, 5, []int32{1}}}
	_, err := MergeSegment(existing, 0.0, 1.0, 6, []int32{2})
	if err == nil {
		t.Fatalf("expected ParentMismatch error")
	}
	if !IsKind(err, KindParentMismatch) {
		t.Fatalf("expected KindParentMismatch, got %v", err)
	}
}

func TestMergeSegmentMultipleExistingSegments(t *testing.T) {
	existing := []Segment{
		{0.0, 0.6, 18, []int32{19}},
		{0.6, 1.0, 18, []int32{19, 20}},
	}
	segs, err := MergeSegment(existing, 0.8, 1.0, 18, []int32{22})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Left != 0.0 || segs[0].Right != 0.6 {
		t.Fatalf("unexpected segment 0: %+v", segs[0])
	}
	childrenEqual(t, segs[0].Children, []int32{19})
	if segs[1].Left != 0.6 || segs[1].Right != 0.8 {
		t.Fatalf("unexpected segment 1: %+v", segs[1])
	}
	childrenEqual(t, segs[1].Children, []int32{19, 20})
	if segs[2].Left != 0.8 || segs[2].Right != 1.0 {
		t.Fatalf("unexpected segment 2: %+v", segs[2])
	}
	childrenEqual(t, segs[2].Children, []int32{19, 20, 22})
}

func TestMergeSegmentCanonicalFormDuplicateChildren(t *testing.T) {
	existing := []Segment{{0.0, 1.0, 5, []int32{1, 2}}}
	segs, err := MergeSegment(existing, 0.0, 1.0, 5, []int32{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %+v", segs)
	}
	childrenEqual(t, segs[0].Children, []int32{1, 2, 3})
}
