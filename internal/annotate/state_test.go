package annotate

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetAndGetSentiment(t *testing.T) {
	s := NewState()

	for _, v := range []string{"positive", "slightly positive", "slightly negative", "negative"} {
		s.SetSentiment("A", v)
		got, ok := s.Sentiment("A")
		if !ok || got != v {
			t.Errorf("Sentiment(A) = %q, %v; want %q, true", got, ok, v)
		}
	}

	if _, ok := s.Sentiment("B"); ok {
		t.Error("expected no sentiment for unlabelled id")
	}
}

func TestClearSentiment(t *testing.T) {
	s := NewState()
	s.SetSentiment("A", "positive")
	s.ClearSentiment("A")
	if _, ok := s.Sentiment("A"); ok {
		t.Error("expected sentiment cleared")
	}

	// Clearing an absent id is a no-op.
	s.ClearSentiment("Z")
	if s.LabelCount() != 0 {
		t.Errorf("LabelCount = %d, want 0", s.LabelCount())
	}
}

// Tag add/remove sequences must behave exactly like replaying the same
// operations against a plain set, and the entry must exist iff the set is
// non-empty.
func TestTagReplayEquivalence(t *testing.T) {
	type op struct {
		add bool
		tag string
	}
	cases := [][]op{
		{{true, "return_later"}},
		{{true, "return_later"}, {true, "return_later"}},
		{{true, "return_later"}, {false, "return_later"}},
		{{true, "a"}, {true, "b"}, {false, "a"}, {true, "c"}, {false, "b"}, {false, "c"}},
		{{false, "ghost"}},
		{{true, "a"}, {false, "b"}, {true, "b"}, {true, "a"}, {false, "a"}},
	}

	for i, ops := range cases {
		t.Run(fmt.Sprintf("seq%d", i), func(t *testing.T) {
			s := NewState()
			want := map[string]bool{}
			for _, o := range ops {
				if o.add {
					s.AddTag("A", o.tag)
					want[o.tag] = true
				} else {
					s.RemoveTag("A", o.tag)
					delete(want, o.tag)
				}
			}

			got := map[string]bool{}
			for _, e := range s.Tags() {
				if e.ID != "A" {
					t.Fatalf("unexpected entry for id %q", e.ID)
				}
				for _, tag := range e.Tags {
					got[tag] = true
				}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("tag set mismatch (-want +got):\n%s", diff)
			}
			if (len(want) == 0) != (s.TagCount() == 0) {
				t.Errorf("entry presence mismatch: want set size %d, TagCount %d", len(want), s.TagCount())
			}
		})
	}
}

func TestDuplicateAddThenRemove(t *testing.T) {
	s := NewState()
	s.AddTag("A", "return_later")
	s.AddTag("A", "return_later")

	tags := s.Tags()
	if len(tags) != 1 || len(tags[0].Tags) != 1 {
		t.Fatalf("Tags() = %+v, want single entry with one tag", tags)
	}

	s.RemoveTag("A", "return_later")
	if s.TagCount() != 0 {
		t.Errorf("TagCount = %d after removing last tag, want 0", s.TagCount())
	}
	if s.HasTag("A", "return_later") {
		t.Error("HasTag should be false after removal")
	}
}

func TestLastLabelledRecency(t *testing.T) {
	s := NewState()
	if _, ok := s.LastLabelled(); ok {
		t.Error("empty state should have no last labelled id")
	}

	s.SetSentiment("A", "positive")
	s.SetSentiment("B", "negative")
	if id, _ := s.LastLabelled(); id != "B" {
		t.Errorf("LastLabelled = %q, want B", id)
	}

	// Re-labelling moves the entry to the end.
	s.SetSentiment("A", "negative")
	if id, _ := s.LastLabelled(); id != "A" {
		t.Errorf("LastLabelled = %q after re-label, want A", id)
	}

	want := []SentimentEntry{{ID: "B", Sentiment: "negative"}, {ID: "A", Sentiment: "negative"}}
	if diff := cmp.Diff(want, s.Sentiments()); diff != "" {
		t.Errorf("Sentiments() mismatch (-want +got):\n%s", diff)
	}

	s.ClearSentiment("A")
	if id, _ := s.LastLabelled(); id != "B" {
		t.Errorf("LastLabelled = %q after clear, want B", id)
	}
}

func TestReplaceTablesEnforcesInvariants(t *testing.T) {
	s := NewState()
	s.SetSentiment("old", "positive")
	s.AddTag("old", "x")

	s.ReplaceSentiments([]SentimentEntry{
		{ID: "A", Sentiment: "positive"},
		{ID: "B", Sentiment: "negative"},
		{ID: "A", Sentiment: "slightly negative"}, // later duplicate wins
	})
	if got, _ := s.Sentiment("A"); got != "slightly negative" {
		t.Errorf("Sentiment(A) = %q, want duplicate-upsert value", got)
	}
	if _, ok := s.Sentiment("old"); ok {
		t.Error("ReplaceSentiments should discard prior table")
	}

	s.ReplaceTags([]TagEntry{
		{ID: "A", Tags: []string{"a", "a", ""}},
		{ID: "B", Tags: nil}, // empty set never materializes
	})
	if got := s.Tags(); len(got) != 1 || len(got[0].Tags) != 1 {
		t.Errorf("ReplaceTags produced %+v, want single entry {A [a]}", got)
	}
}
