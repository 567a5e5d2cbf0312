package snapshot

import (
	"context"
)

// Change describes one color that differs between two runs. Before is nil
// for additions and After is nil for removals.
type Change struct {
	Brand  string      `json:"brand"`
	Code   string      `json:"code"`
	Before *BrandColor `json:"before,omitempty"`
	After  *BrandColor `json:"after,omitempty"`
}

// Diff lists the differences between two runs.
type Diff struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Added   []Change `json:"added"`
	Removed []Change `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the runs produced identical colors.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

type colorKey struct {
	brand string
	code  string
}

// Diff compares the colors of two runs, keyed by brand and code. Results
// follow the order of the newer run, removals the order of the older one.
func (s *Store) Diff(ctx context.Context, fromRunID, toRunID string) (Diff, error) {
	if _, err := s.GetRun(ctx, fromRunID); err != nil {
		return Diff{}, err
	}
	if _, err := s.GetRun(ctx, toRunID); err != nil {
		return Diff{}, err
	}
	before, err := s.Colors(ctx, fromRunID, "")
	if err != nil {
		return Diff{}, err
	}
	after, err := s.Colors(ctx, toRunID, "")
	if err != nil {
		return Diff{}, err
	}

	old := make(map[colorKey]BrandColor, len(before))
	for _, c := range before {
		old[colorKey{c.Brand, c.Code}] = c
	}
	seen := make(map[colorKey]struct{}, len(after))

	diff := Diff{From: fromRunID, To: toRunID}
	for _, c := range after {
		key := colorKey{c.Brand, c.Code}
		seen[key] = struct{}{}
		next := c
		prev, ok := old[key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, Change{Brand: c.Brand, Code: c.Code, After: &next})
		case prev.Color != c.Color:
			diff.Changed = append(diff.Changed, Change{Brand: c.Brand, Code: c.Code, Before: &prev, After: &next})
		}
	}
	for _, c := range before {
		if _, ok := seen[colorKey{c.Brand, c.Code}]; ok {
			continue
		}
		prev := c
		diff.Removed = append(diff.Removed, Change{Brand: c.Brand, Code: c.Code, Before: &prev})
	}
	return diff, nil
}
