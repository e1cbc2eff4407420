package ranking

import (
	"github.com/poiesic/loci/core"
)

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate signals during a ranking pass.
type RankMonitor interface {
	Start(query string, candidates int)
	AfterProfileBuild(profiles []string)
	AfterSemanticScores(scores []float64)
	Scored(place *core.ScoredPlace)
	Finish(results []core.ScoredPlace)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)           {}
func (n *noopMonitor) AfterProfileBuild(_ []string)    {}
func (n *noopMonitor) AfterSemanticScores(_ []float64) {}
func (n *noopMonitor) Scored(_ *core.ScoredPlace)      {}
func (n *noopMonitor) Finish(_ []core.ScoredPlace)     {}
