package entity

// transitionTable lists, for each source state, the states it may move to.
type transitionTable[S comparable] map[S][]S

func (t transitionTable[S]) allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// sourcesOf returns every state that may move to `to`.
func (t transitionTable[S]) sourcesOf(to S) []S {
	var sources []S
	for from, nexts := range t {
		for _, next := range nexts {
			if next == to {
				sources = append(sources, from)
				break
			}
		}
	}
	return sources
}

func (t transitionTable[S]) terminal(s S) bool {
	return len(t[s]) == 0
}

func toStrings[S ~string](states []S) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
