package relation

// Diff compares the submitted ids for one binding against the previously
// stored ids and returns the statements to add and to remove. self is the
// catalog id of the record being edited; self-references are dropped so a
// record can never relate to itself.
func Diff(self string, b Binding, old, submitted []string) (add, remove []Triple) {
	oldSet := toSet(old)
	newSet := toSet(submitted)
	delete(newSet, self)

	for id := range newSet {
		if _, existed := oldSet[id]; !existed {
			add = append(add, statement(self, b, id))
		}
	}
	for id := range oldSet {
		if _, kept := newSet[id]; !kept {
			remove = append(remove, statement(self, b, id))
		}
	}
	return add, remove
}

func statement(self string, b Binding, other string) Triple {
	if b.Inverse {
		return Triple{Subject: other, Predicate: b.Predicate, Object: self}
	}
	return Triple{Subject: self, Predicate: b.Predicate, Object: other}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
