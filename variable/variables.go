package variable

// UpdateCommand maps a Variable name to the index it should adopt. It
// represents one sweep point. When produced by Variables.Compile, it omits
// names whose index did not change since the previous point (the
// incremental update discipline of spec.md §3).
type UpdateCommand map[string]int

// Variables is an ordered collection of Groups. Its compiled form is the
// Cartesian product of each group's index range, in group-major order
// (the first group varies slowest, mirroring a nested-loop sweep).
type Variables struct {
	groups []*Group
}

// NewVariables collects groups into a Variables set. A bare Variable can be
// wrapped as a single-member Group via NewGroup(v).
func NewVariables(groups ...*Group) *Variables {
	cp := make([]*Group, len(groups))
	copy(cp, groups)

	return &Variables{groups: cp}
}

// Compile enumerates the Cartesian product of all group indices and
// returns one UpdateCommand per sweep point, each containing only the
// names whose index changed relative to the previous point. The very
// first command always contains every name (there is no previous point to
// diff against).
func (vs *Variables) Compile() []UpdateCommand {
	if len(vs.groups) == 0 {
		return nil
	}

	lens := make([]int, len(vs.groups))
	total := 1
	for i, g := range vs.groups {
		l := g.Len()
		if l == 0 {
			l = 1 // empty group contributes no axis; treat as a single point
		}
		lens[i] = l
		total *= l
	}

	indices := make([]int, len(vs.groups))
	prev := map[string]int(nil)
	commands := make([]UpdateCommand, 0, total)

	for point := 0; point < total; point++ {
		full := map[string]int{}
		for gi, g := range vs.groups {
			for _, m := range g.members {
				full[m.Name()] = indices[gi]
			}
		}

		cmd := UpdateCommand{}
		for name, idx := range full {
			if prev == nil {
				cmd[name] = idx
				continue
			}
			if prevIdx, ok := prev[name]; !ok || prevIdx != idx {
				cmd[name] = idx
			}
		}
		commands = append(commands, cmd)
		prev = full

		// odometer increment, rightmost axis fastest
		for gi := len(vs.groups) - 1; gi >= 0; gi-- {
			indices[gi]++
			if indices[gi] < lens[gi] {
				break
			}
			indices[gi] = 0
		}
	}

	return commands
}

// Apply moves every Variable named in cmd to its new index, resolving
// names through registry. Unknown names are skipped: a command produced
// for a richer Variables set may be replayed against a registry that only
// knows a subset (e.g. after Sequence.Call flattens a sub-sequence).
func Apply(cmd UpdateCommand, registry map[string]*Variable) error {
	for name, idx := range cmd {
		v, ok := registry[name]
		if !ok {
			continue
		}
		if err := v.SetIndex(idx); err != nil {
			return err
		}
	}

	return nil
}
