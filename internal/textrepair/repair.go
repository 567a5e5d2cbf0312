package textrepair

import (
	"fmt"
	"strings"
)

// Strategy is one repair attempt. ok reports whether out should be used.
type Strategy interface {
	Name() string
	Repair(text string) (out string, ok bool)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc struct {
	Label string
	Fn    func(string) (string, bool)
}

// Name returns the strategy label.
func (s StrategyFunc) Name() string { return s.Label }

// Repair runs the wrapped function.
func (s StrategyFunc) Repair(text string) (string, bool) { return s.Fn(text) }

// Mode names a predefined strategy chain.
type Mode string

const (
	// ModeHeuristic runs the general-purpose mojibake detector.
	ModeHeuristic Mode = "heuristic"
	// ModeLegacy runs the code-page fallback chain.
	ModeLegacy Mode = "legacy"
)

// Repairer applies a strategy chain.
type Repairer struct {
	strategies []Strategy
}

// New builds a repairer from an explicit chain.
func New(strategies ...Strategy) *Repairer {
	chain := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return &Repairer{strategies: chain}
}

// ForMode returns the predefined chain for mode. maxPasses bounds the number
// of layers the heuristic will peel; values <= 0 use the default.
func ForMode(mode Mode, maxPasses int) (*Repairer, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case "", ModeHeuristic:
		return New(Heuristic(maxPasses)), nil
	case ModeLegacy:
		return New(Windows1252(), Latin1(), PercentDecode()), nil
	default:
		return nil, fmt.Errorf("repair mode: unsupported value %q", mode)
	}
}

// Default returns the heuristic chain.
func Default() *Repairer {
	return New(Heuristic(0))
}

// Fix returns the first successful strategy result, or text unchanged.
func (r *Repairer) Fix(text string) string {
	out, _ := r.FixWith(text)
	return out
}

// FixWith is Fix that also names the strategy that succeeded. The name is
// empty when the chain was exhausted.
func (r *Repairer) FixWith(text string) (string, string) {
	if r == nil {
		return text, ""
	}
	for _, s := range r.strategies {
		if out, ok := s.Repair(text); ok {
			return out, s.Name()
		}
	}
	return text, ""
}

// Strategies lists the chain in evaluation order.
func (r *Repairer) Strategies() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Fix repairs text with the default chain.
func Fix(text string) string {
	return Default().Fix(text)
}
