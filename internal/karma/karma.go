// Package karma maps accumulated reputation scores to tiers and answers
// which tiers may perform which actions.
//
// Everything here is pure: the score itself lives in the profiles table and
// is only ever read by this package.
package karma

import "fmt"

// Tier is a named rank derived from a karma score.
type Tier string

const (
	Newcomer    Tier = "newcomer"
	Contributor Tier = "contributor"
	Trusted     Tier = "trusted"
	Expert      Tier = "expert"
	Curator     Tier = "curator"
	Moderator   Tier = "moderator"
)

// tierThreshold pairs a tier with its inclusive lower bound.
type tierThreshold struct {
	tier Tier
	min  int
}

// thresholds is ordered by min ascending. Moderator has no score threshold:
// it is granted out of band and is never derived from a score.
var thresholds = []tierThreshold{
	{Newcomer, 0},
	{Contributor, 50},
	{Trusted, 200},
	{Expert, 500},
	{Curator, 1000},
}

// progression is the score-earned ladder used by NextTier.
var progression = []Tier{Newcomer, Contributor, Trusted, Expert, Curator}

// Tiers returns every known tier in rank order, moderator last.
func Tiers() []Tier {
	return []Tier{Newcomer, Contributor, Trusted, Expert, Curator, Moderator}
}

// ParseTier validates a tier name read from storage or the wire.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// TierFromScore returns the highest tier whose threshold is <= score.
// Negative scores map to Newcomer.
func TierFromScore(score int) Tier {
	tier := Newcomer
	for _, th := range thresholds {
		if score >= th.min {
			tier = th.tier
		}
	}
	return tier
}

// MinScore returns the inclusive lower bound of a score-earned tier.
// It reports false for Moderator and unknown tiers.
func MinScore(t Tier) (int, bool) {
	for _, th := range thresholds {
		if th.tier == t {
			return th.min, true
		}
	}
	return 0, false
}

// NextTier returns the tier immediately above t on the score ladder.
// Curator, Moderator and unknown tiers have no next tier.
func NextTier(t Tier) (Tier, bool) {
	for i, p := range progression {
		if p == t && i+1 < len(progression) {
			return progression[i+1], true
		}
	}
	return "", false
}

// KarmaToNextTier returns how much karma is still needed to reach the next
// tier. The value may be <= 0, which callers treat as eligible now.
func KarmaToNextTier(score int) (int, bool) {
	next, ok := NextTier(TierFromScore(score))
	if !ok {
		return 0, false
	}
	floor, _ := MinScore(next)
	return floor - score, true
}

// Standing summarises a profile's position on the ladder.
type Standing struct {
	Score    int
	Tier     Tier
	NextTier Tier // empty when there is none
	ToNext   int  // zero when NextTier is empty
}

// Progress builds a Standing for score. A non-empty override (staff pinned
// the user to moderator, for example) replaces the derived tier, and the
// distance to the next tier is measured from the override.
func Progress(score int, override Tier) Standing {
	s := Standing{Score: score, Tier: TierFromScore(score)}
	if override != "" {
		s.Tier = override
	}
	if next, ok := NextTier(s.Tier); ok {
		s.NextTier = next
		floor, _ := MinScore(next)
		s.ToNext = max(floor-score, 0)
	}
	return s
}
