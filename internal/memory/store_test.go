package memory

import "testing"

func TestRetrieveKeySubstring(t *testing.T) {
	s := NewStore()
	s.Put("a1", "first", nil)

	got := s.Retrieve("a")
	if len(got) != 1 || got[0].Key != "a1" {
		t.Fatalf("Retrieve(\"a\") = %+v, want the a1 entry", got)
	}
}

func TestRetrieveValueSubstring(t *testing.T) {
	s := NewStore()
	s.Put("tick-1", map[string]string{"phase": "ignition"}, nil)

	got := s.Retrieve("ignition")
	if len(got) != 1 || got[0].Key != "tick-1" {
		t.Fatalf("expected match on serialized value, got %+v", got)
	}
}

func TestRetrieveAbsentQueryEmpty(t *testing.T) {
	s := NewStore()
	s.Put("a1", "first", nil)
	s.Put("b2", "second", nil)

	if got := s.Retrieve("zzz"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := NewStore()
	s.Put("k", "old", nil)
	s.Put("k", "new", map[string]string{"rev": "2"})

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 after overwrite", s.Len())
	}
	e, ok := s.Get("k")
	if !ok || e.Value != "new" || e.Metadata["rev"] != "2" {
		t.Fatalf("unexpected entry after overwrite: %+v", e)
	}
}

func TestRetrieveOrderedByKey(t *testing.T) {
	s := NewStore()
	s.Put("b", 1, nil)
	s.Put("a", 2, nil)
	s.Put("c", 3, nil)

	got := s.Retrieve("")
	if len(got) != 3 || got[0].Key != "a" || got[2].Key != "c" {
		t.Fatalf("expected all entries ordered by key, got %+v", got)
	}
}
