package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
)

// RenderStates renders the compiled automaton rooted at root as a table,
// one row per reachable state, for debugging and for the parsegen CLI's
// table-inspection command. Not meant for machine consumption.
func RenderStates[T comparable](root *State[T]) string {
	order, names := collectStates(root)

	data := [][]string{{"state", "actions", "goto"}}
	for _, st := range order {
		data = append(data, []string{
			names[st],
			renderActions(st),
			renderTransitions(st, names),
		})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func collectStates[T comparable](root *State[T]) ([]*State[T], map[*State[T]]string) {
	names := map[*State[T]]string{root: "S0"}
	order := []*State[T]{root}

	queue := []*State[T]{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Transitions is a map, so its iteration order is nondeterministic;
		// sort by edge label so state numbering is reproducible run-to-run.
		keys := make([]string, 0, len(cur.Transitions))
		for k := range cur.Transitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			next := cur.Transitions[k]
			if _, ok := names[next]; !ok {
				names[next] = fmt.Sprintf("S%d", len(order))
				order = append(order, next)
				queue = append(queue, next)
			}
		}
	}

	return order, names
}

func renderActions[T comparable](st *State[T]) string {
	keys := make([]string, 0, len(st.Actions))
	for k := range st.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, st.Actions[k].String()))
	}
	return strings.Join(parts, "; ")
}

func renderTransitions[T comparable](st *State[T], names map[*State[T]]string) string {
	keys := make([]string, 0, len(st.Transitions))
	for k := range st.Transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s -> %s", k, names[st.Transitions[k]]))
	}
	return strings.Join(parts, "; ")
}
