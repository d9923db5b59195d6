// Package annotate holds the in-memory annotation tables: at most one
// sentiment value and one tag set per record uid.
//
// Both tables keep recency order: an upsert moves the entry to the end of
// its table, so the final entry is the most recently touched one. That
// order defines "most recently labelled" start-position resolution and the
// row order of the persisted CSV files. The State is owned by the single
// UI event loop and is not safe for concurrent use.
package annotate

// SentimentEntry is one row of the sentiment table.
type SentimentEntry struct {
	ID        string
	Sentiment string
}

// TagEntry is one row of the tag table. Tags preserves first-add order.
// A TagEntry with no tags never exists at rest; the entry is removed when
// its last tag is.
type TagEntry struct {
	ID   string
	Tags []string
}

// State owns the sentiment and tag tables.
type State struct {
	sentiments map[string]string
	sentOrder  []string

	tags     map[string][]string
	tagOrder []string
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		sentiments: make(map[string]string),
		tags:       make(map[string][]string),
	}
}

func moveToEnd(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			order = append(order[:i], order[i+1:]...)
			break
		}
	}
	return append(order, id)
}

func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Sentiment returns the sentiment recorded for id, if any.
func (s *State) Sentiment(id string) (string, bool) {
	v, ok := s.sentiments[id]
	return v, ok
}

// SetSentiment upserts the sentiment for id, replacing any prior entry and
// moving it to the end of the table. No option-set validation happens
// here; offering only configured values is the presentation layer's job.
func (s *State) SetSentiment(id, value string) {
	s.sentiments[id] = value
	s.sentOrder = moveToEnd(s.sentOrder, id)
}

// ClearSentiment removes the entry for id. No-op when absent.
func (s *State) ClearSentiment(id string) {
	if _, ok := s.sentiments[id]; !ok {
		return
	}
	delete(s.sentiments, id)
	s.sentOrder = remove(s.sentOrder, id)
}

// AddTag inserts tag into id's tag set, creating the entry on first add.
// Adding an already-present tag is a no-op on the set, but still counts as
// touching the entry for recency order.
func (s *State) AddTag(id, tag string) {
	existing, ok := s.tags[id]
	if !ok {
		s.tags[id] = []string{tag}
		s.tagOrder = append(s.tagOrder, id)
		return
	}
	present := false
	for _, t := range existing {
		if t == tag {
			present = true
			break
		}
	}
	if !present {
		s.tags[id] = append(existing, tag)
	}
	s.tagOrder = moveToEnd(s.tagOrder, id)
}

// RemoveTag removes tag from id's tag set if present. When the set
// empties, the entry is deleted entirely.
func (s *State) RemoveTag(id, tag string) {
	existing, ok := s.tags[id]
	if !ok {
		return
	}
	kept := existing[:0]
	for _, t := range existing {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(s.tags, id)
		s.tagOrder = remove(s.tagOrder, id)
		return
	}
	s.tags[id] = kept
	s.tagOrder = moveToEnd(s.tagOrder, id)
}

// HasTag reports whether id currently carries tag.
func (s *State) HasTag(id, tag string) bool {
	for _, t := range s.tags[id] {
		if t == tag {
			return true
		}
	}
	return false
}

// LastLabelled returns the uid of the most recently set sentiment entry.
func (s *State) LastLabelled() (string, bool) {
	if len(s.sentOrder) == 0 {
		return "", false
	}
	return s.sentOrder[len(s.sentOrder)-1], true
}

// Sentiments returns the sentiment table in recency order.
func (s *State) Sentiments() []SentimentEntry {
	out := make([]SentimentEntry, 0, len(s.sentOrder))
	for _, id := range s.sentOrder {
		out = append(out, SentimentEntry{ID: id, Sentiment: s.sentiments[id]})
	}
	return out
}

// Tags returns the tag table in recency order. The returned tag slices are
// copies; mutating them does not affect the State.
func (s *State) Tags() []TagEntry {
	out := make([]TagEntry, 0, len(s.tagOrder))
	for _, id := range s.tagOrder {
		out = append(out, TagEntry{ID: id, Tags: append([]string(nil), s.tags[id]...)})
	}
	return out
}

// LabelCount returns the number of sentiment entries.
func (s *State) LabelCount() int { return len(s.sentiments) }

// TagCount returns the number of tag entries.
func (s *State) TagCount() int { return len(s.tags) }

// ReplaceSentiments discards the sentiment table and installs entries in
// the given order. Later duplicates win, matching upsert semantics.
func (s *State) ReplaceSentiments(entries []SentimentEntry) {
	s.sentiments = make(map[string]string, len(entries))
	s.sentOrder = nil
	for _, e := range entries {
		s.SetSentiment(e.ID, e.Sentiment)
	}
}

// ReplaceTags discards the tag table and installs entries in the given
// order. Empty tag sets are dropped to preserve the no-empty-entry
// invariant; duplicate tags within an entry collapse.
func (s *State) ReplaceTags(entries []TagEntry) {
	s.tags = make(map[string][]string, len(entries))
	s.tagOrder = nil
	for _, e := range entries {
		for _, t := range e.Tags {
			if t == "" {
				continue
			}
			s.AddTag(e.ID, t)
		}
	}
}
