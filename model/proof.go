package model

import "fmt"

// ProofError reports a well-formedness failure found by [Message.Finalize].
// It intentionally carries no exported fields beyond its message: callers
// that need structured detail should use errors.As against the caller's own
// wrapping type (the parent package wraps this into InvalidGrammarError).
type ProofError struct {
	msg string
}

func (e *ProofError) Error() string { return e.msg }

func proofErrorf(format string, args ...any) error {
	return &ProofError{msg: fmt.Sprintf(format, args...)}
}

// Finalize runs the target model's well-formedness pipeline against m:
// structural checks always run; when skipProof is false, Finalize
// additionally verifies that the outgoing guards of every field are
// mutually exclusive (deterministic branching). Finalize is idempotent: a
// Message that has already been finalized successfully with the same
// skipProof is not re-checked.
func (m *Message) Finalize(skipProof bool) error {
	if m.proven != nil && (*m.proven || skipProof) {
		// already finalized at least as strictly as requested
		return nil
	}

	if err := m.checkStructure(); err != nil {
		return err
	}
	if !skipProof {
		if err := m.checkDeterminism(); err != nil {
			return err
		}
	}

	proven := !skipProof
	m.proven = &proven
	return nil
}

func (m *Message) checkStructure() error {
	seen := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		if f.Name == Initial || f.Name == Final {
			return proofErrorf("message %s: field %q shadows a synthetic endpoint", m.ID, f.Name)
		}
		if seen[f.Name] {
			return proofErrorf("message %s: duplicate field %q", m.ID, f.Name)
		}
		seen[f.Name] = true
	}

	valid := func(name string) bool {
		return name == Initial || name == Final || seen[name]
	}
	forward := make(map[string][]string)
	backward := make(map[string][]string)
	for _, l := range m.Links {
		if !valid(l.From) {
			return proofErrorf("message %s: link from undefined field %q", m.ID, l.From)
		}
		if !valid(l.To) {
			return proofErrorf("message %s: link to undefined field %q", m.ID, l.To)
		}
		forward[l.From] = append(forward[l.From], l.To)
		backward[l.To] = append(backward[l.To], l.From)
	}

	if len(m.Fields) == 0 {
		hasDirect := false
		for _, l := range m.Links {
			if l.From == Initial && l.To == Final {
				hasDirect = true
			}
		}
		if !hasDirect && len(m.Links) > 0 {
			return proofErrorf("message %s: empty message must link Initial directly to Final", m.ID)
		}
		return nil
	}

	reachableFromInitial := bfs(forward, Initial)
	for name := range seen {
		if !reachableFromInitial[name] {
			return proofErrorf("message %s: field %q is unreachable from Initial", m.ID, name)
		}
	}
	if !reachableFromInitial[Final] {
		return proofErrorf("message %s: Final is unreachable from Initial", m.ID)
	}

	reachesFinal := bfs(backward, Final)
	for name := range seen {
		if !reachesFinal[name] {
			return proofErrorf("message %s: field %q cannot reach Final", m.ID, name)
		}
	}

	return nil
}

func bfs(edges map[string][]string, start string) map[string]bool {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range edges[n] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// checkDeterminism verifies that, for every field, the outgoing links have
// mutually exclusive guards: a field with more than one outgoing link has no
// unconditional link among them, and no two of its links have syntactically
// identical conditions or identical single-field equality tests.
func (m *Message) checkDeterminism() error {
	outgoing := make(map[string][]Link)
	for _, l := range m.Links {
		outgoing[l.From] = append(outgoing[l.From], l)
	}

	for from, links := range outgoing {
		if len(links) <= 1 {
			continue
		}
		unconditional := 0
		for _, l := range links {
			if l.Condition == nil {
				unconditional++
			}
		}
		if unconditional > 0 {
			return proofErrorf("message %s: field %q has an unconditional link alongside %d other outgoing links", m.ID, from, len(links)-1)
		}
		for i := 0; i < len(links); i++ {
			for j := i + 1; j < len(links); j++ {
				if links[i].Condition.String() == links[j].Condition.String() {
					return proofErrorf("message %s: field %q has two outgoing links with the same guard %q", m.ID, from, links[i].Condition.String())
				}
				if ei, ok := links[i].Condition.(Eq); ok {
					if ej, ok := links[j].Condition.(Eq); ok && ei.Field == ej.Field && ei.Value == ej.Value {
						return proofErrorf("message %s: field %q has two outgoing links both matching %s = %d", m.ID, from, ei.Field, ei.Value)
					}
				}
			}
		}
	}
	return nil
}
