package rdf

// Graph is an in-memory set of triples queryable by partial pattern.
//
// Adding a triple that is already present is a no-op. Pattern queries return
// matches in insertion order so graph walks are deterministic. A Graph is not
// safe for concurrent use.
type Graph struct {
	entries  map[string]*graphEntry
	subjects map[string][]*graphEntry
	order    []*graphEntry
	removed  int
}

type graphEntry struct {
	triple  Triple
	key     string
	removed bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		entries:  make(map[string]*graphEntry),
		subjects: make(map[string][]*graphEntry),
	}
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.entries) }

// Add inserts a triple. It reports whether the triple was new.
// Triples with a missing subject, predicate, or object are ignored.
func (g *Graph) Add(t Triple) bool {
	if t.S == nil || t.P.IsZero() || t.O == nil {
		return false
	}
	key := t.String()
	if _, ok := g.entries[key]; ok {
		return false
	}
	entry := &graphEntry{triple: t, key: key}
	g.entries[key] = entry
	subject := termKey(t.S)
	g.subjects[subject] = append(g.subjects[subject], entry)
	g.order = append(g.order, entry)
	return true
}

// AddAll inserts every triple and returns how many were new.
func (g *Graph) AddAll(triples ...Triple) int {
	added := 0
	for _, t := range triples {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Has reports whether at least one triple matches the pattern.
func (g *Graph) Has(s Term, p IRI, o Term) bool {
	found := false
	g.each(s, p, o, func(*graphEntry) bool {
		found = true
		return false
	})
	return found
}

// Triples returns the triples matching the pattern. A nil subject or object,
// or a zero predicate, matches anything.
func (g *Graph) Triples(s Term, p IRI, o Term) []Triple {
	var out []Triple
	g.each(s, p, o, func(e *graphEntry) bool {
		out = append(out, e.triple)
		return true
	})
	return out
}

// Objects returns the objects of triples matching (s, p, *).
func (g *Graph) Objects(s Term, p IRI) []Term {
	var out []Term
	g.each(s, p, nil, func(e *graphEntry) bool {
		out = append(out, e.triple.O)
		return true
	})
	return out
}

// Object returns the first object of (s, p, *) and whether one exists.
func (g *Graph) Object(s Term, p IRI) (Term, bool) {
	var found Term
	g.each(s, p, nil, func(e *graphEntry) bool {
		found = e.triple.O
		return false
	})
	return found, found != nil
}

// Subjects returns the subjects of triples matching (*, p, o).
func (g *Graph) Subjects(p IRI, o Term) []Term {
	var out []Term
	g.each(nil, p, o, func(e *graphEntry) bool {
		out = append(out, e.triple.S)
		return true
	})
	return out
}

// All returns every triple in insertion order.
func (g *Graph) All() []Triple {
	return g.Triples(nil, IRI{}, nil)
}

// Remove deletes every triple matching the pattern and returns how many were
// removed. Wildcards follow the same rules as Triples.
func (g *Graph) Remove(s Term, p IRI, o Term) int {
	var matched []*graphEntry
	g.each(s, p, o, func(e *graphEntry) bool {
		matched = append(matched, e)
		return true
	})
	for _, e := range matched {
		e.removed = true
		delete(g.entries, e.key)
	}
	g.removed += len(matched)
	if g.removed > len(g.entries) {
		g.compact()
	}
	return len(matched)
}

// RemoveSubject deletes every triple whose subject is s.
func (g *Graph) RemoveSubject(s Term) int {
	if s == nil {
		return 0
	}
	return g.Remove(s, IRI{}, nil)
}

func (g *Graph) each(s Term, p IRI, o Term, fn func(*graphEntry) bool) {
	candidates := g.order
	subjectKey := termKey(s)
	if s != nil {
		candidates = g.subjects[subjectKey]
	}
	objectKey := termKey(o)
	for _, e := range candidates {
		if e.removed {
			continue
		}
		if !p.IsZero() && e.triple.P.Value != p.Value {
			continue
		}
		if o != nil && termKey(e.triple.O) != objectKey {
			continue
		}
		if s != nil && termKey(e.triple.S) != subjectKey {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

func (g *Graph) compact() {
	live := g.order[:0]
	for _, e := range g.order {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(g.order); i++ {
		g.order[i] = nil
	}
	g.order = live

	for subject, entries := range g.subjects {
		kept := entries[:0]
		for _, e := range entries {
			if !e.removed {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.subjects, subject)
			continue
		}
		g.subjects[subject] = kept
	}
	g.removed = 0
}
