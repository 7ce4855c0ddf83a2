package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// resolveNode resolves a node reference, which can be:
//   - A full node id
//   - A unique id prefix
//   - A name, matched case-insensitively, then fuzzily
//
// Any step that matches more than one node is an error.
func resolveNode(ctx context.Context, app *App, input string) (*domain.Node, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("node reference is required")
	}
	nodes, err := app.Nodes.List(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := matchRef(input, len(nodes),
		func(i int) string { return nodes[i].ID },
		func(i int) string { return nodes[i].Name },
	)
	if err != nil {
		return nil, fmt.Errorf("node %w", err)
	}
	return nodes[idx], nil
}

func resolveNodeID(ctx context.Context, app *App, input string) (string, error) {
	n, err := resolveNode(ctx, app, input)
	if err != nil {
		return "", err
	}
	return n.ID, nil
}

// resolveVertical resolves a vertical by id, id prefix or name.
func resolveVertical(ctx context.Context, app *App, input string) (*domain.Vertical, error) {
	verticals, err := app.Verticals.List(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := matchRef(input, len(verticals),
		func(i int) string { return verticals[i].ID },
		func(i int) string { return verticals[i].Name },
	)
	if err != nil {
		return nil, fmt.Errorf("vertical %w", err)
	}
	return verticals[idx], nil
}

// matchRef picks the single entry that input refers to. Each rule is tried
// in order and the first one with any match decides.
func matchRef(input string, n int, id, name func(int) string) (int, error) {
	rules := []func(i int) bool{
		func(i int) bool { return id(i) == input },
		func(i int) bool { return strings.HasPrefix(id(i), input) },
		func(i int) bool { return strings.EqualFold(name(i), input) },
	}
	for _, rule := range rules {
		var hits []int
		for i := 0; i < n; i++ {
			if rule(i) {
				hits = append(hits, i)
			}
		}
		if len(hits) == 1 {
			return hits[0], nil
		}
		if len(hits) > 1 {
			return 0, ambiguous(input, hits, name)
		}
	}

	names := make([]string, n)
	for i := range names {
		names[i] = name(i)
	}
	ranks := fuzzy.RankFindNormalizedFold(input, names)
	sort.Sort(ranks)
	switch len(ranks) {
	case 0:
		return 0, fmt.Errorf("not found: %q", input)
	case 1:
		return ranks[0].OriginalIndex, nil
	}
	hits := make([]int, 0, len(ranks))
	for _, r := range ranks {
		hits = append(hits, r.OriginalIndex)
	}
	return 0, ambiguous(input, hits, name)
}

func ambiguous(input string, hits []int, name func(int) string) error {
	const shown = 5
	labels := make([]string, 0, shown)
	for _, i := range hits {
		if len(labels) == shown {
			labels = append(labels, "...")
			break
		}
		labels = append(labels, name(i))
	}
	return fmt.Errorf("reference %q is ambiguous (%d matches: %s)", input, len(hits), strings.Join(labels, ", "))
}
