package decision

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
	"github.com/danielpatrickdp/plasma-twin/internal/scoring"
)

// #region selector

// Selector picks control labels per category via ordered threshold rules and
// learns a coarse success pattern per quantized state bucket. Single-threaded
// by design; owned exclusively by its engine.
type Selector struct {
	cfg     Config
	book    *Book
	best    map[Category]Choice
	history []Decision
}

// NewSelector creates a selector with an empty pattern book and the default
// current-best labels.
func NewSelector(cfg Config) *Selector {
	return &Selector{
		cfg:  cfg,
		book: NewBook(),
		best: defaultBest(),
	}
}

// #endregion selector

// #region decide

// Decide evaluates the rule tables against the snapshot, computes an overall
// confidence from the best pattern match, learns from the snapshot, and
// appends the decision to the unbounded history.
func (sel *Selector) Decide(s plasma.Snapshot, tick int) Decision {
	controls := make(map[Category]Choice, len(Categories))
	for _, cat := range Categories {
		controls[cat] = firstMatch(rulesByCategory[cat], s, sel.best[cat])
	}

	// Match score defaults to 0.5 before any pattern exists. Unlike the
	// plasma stability path, the input is not clamped before scoring.
	matchScore := 0.5
	if m, ok := sel.book.BestMatch(s); ok {
		matchScore = m
	}
	confidence := scoring.ScoreWith(matchScore, sel.cfg.Scoring)

	d := Decision{
		ID:         uuid.New().String(),
		Tick:       tick,
		Timestamp:  time.Now().UTC(),
		Inputs:     s,
		Controls:   controls,
		Confidence: confidence,
		ShouldAct:  confidence > sel.cfg.ActThreshold,
	}

	sel.learn(s, controls)
	sel.history = append(sel.history, d)
	return d
}

// #endregion decide

// #region learn

// learn runs unconditionally once per decision.
func (sel *Selector) learn(s plasma.Snapshot, controls map[Category]Choice) {
	_, success := sel.book.Observe(s)

	// success is strictly 0 or 1, so this threshold is equivalent to
	// "stability exceeded 0.5 this tick" rather than a running success rate.
	if success > 0.8 {
		for cat, choice := range controls {
			sel.best[cat] = Choice{
				Label:  choice.Label,
				Reason: "no rule matched, keeping current best",
			}
		}
	}
}

// #endregion learn

// #region accessors

// History returns an ordered copy of all decisions made so far.
func (sel *Selector) History() []Decision {
	out := make([]Decision, len(sel.history))
	copy(out, sel.history)
	return out
}

// Patterns returns the learned patterns ranked by average success.
func (sel *Selector) Patterns() []Pattern {
	return sel.book.Ranked()
}

// CurrentBest returns the fall-through label for a category.
func (sel *Selector) CurrentBest(cat Category) Choice {
	return sel.best[cat]
}

// #endregion accessors
