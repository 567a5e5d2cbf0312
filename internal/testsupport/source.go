package testsupport

import (
	"context"
	"fmt"

	"beadcolors/internal/source"
)

// MapSource is an in-memory source.Source. Names mapped to a non-nil Err
// fail with that error; missing names report source.ErrNotFound.
type MapSource struct {
	Dumps map[string]string
	Errs  map[string]error
	Reads []string
}

func (m *MapSource) Location() string { return "memory" }

func (m *MapSource) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.Reads = append(m.Reads, name)
	if err, ok := m.Errs[name]; ok && err != nil {
		return "", err
	}
	text, ok := m.Dumps[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, source.ErrNotFound)
	}
	return text, nil
}
