package variable

// Group is an ordered set of Variables that must be swept together: all
// members share the same Len(), and advancing the group's cursor advances
// every member's cursor in lockstep (the "zipped variables" invariant of
// spec.md §3).
type Group struct {
	members []*Variable
}

// NewGroup validates the zipped-length invariant and returns a Group.
func NewGroup(members ...*Variable) (*Group, error) {
	if len(members) == 0 {
		return &Group{}, nil
	}

	n := members[0].Len()
	for _, m := range members[1:] {
		if m.Len() != n {
			return nil, ErrZippedLengthMismatch
		}
	}

	cp := make([]*Variable, len(members))
	copy(cp, members)

	return &Group{members: cp}, nil
}

// Len returns the shared sweep length, or 0 for an empty group.
func (g *Group) Len() int {
	if len(g.members) == 0 {
		return 0
	}

	return g.members[0].Len()
}

// Members returns the group's variables in insertion order.
func (g *Group) Members() []*Variable {
	out := make([]*Variable, len(g.members))
	copy(out, g.members)

	return out
}

// setIndex moves every member's cursor to i.
func (g *Group) setIndex(i int) error {
	for _, m := range g.members {
		if err := m.SetIndex(i); err != nil {
			return err
		}
	}

	return nil
}
