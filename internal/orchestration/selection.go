package orchestration

import (
	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/scheme"
)

// GetEnginesToRun resolves a scheme selector to engines. "all" returns every
// registered engine in name order; an unknown name returns nil.
func GetEnginesToRun(selector string, factory scheme.Factory) []scheme.Engine {
	if selector == config.SchemeAll {
		names := factory.List()
		engines := make([]scheme.Engine, 0, len(names))
		for _, name := range names {
			if e, err := factory.Get(name); err == nil {
				engines = append(engines, e)
			}
		}
		return engines
	}
	if e, err := factory.Get(selector); err == nil {
		return []scheme.Engine{e}
	}
	return nil
}
