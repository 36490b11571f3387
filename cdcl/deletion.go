package cdcl

import (
	"sort"

	"github.com/adrianhallmark/satcore/sat"
)

// DeletionPolicy names a learnt-clause deletion policy (spec.md §4.6).
type DeletionPolicy string

const (
	DeletionNever   DeletionPolicy = "never"
	DeletionBerkMin DeletionPolicy = "berk-min"
)

// berkMinBaseFrequency and berkMinRoundStep determine how many learnts must
// be added between clause-database clean-ups: D = base + step*round. The
// source specification leaves D implementation-defined; these are the
// values it suggests as a common choice (spec.md §9).
const (
	berkMinBaseFrequency = 2000
	berkMinRoundStep     = 300
)

// deletionManager decides, after each learnt clause is added, whether the
// learnt database should be reduced, and performs the reduction.
type deletionManager interface {
	// learntAdded is called once per learnt clause and returns true if the
	// clause database should be reduced now.
	learntAdded() bool

	// reduce halves the learnt database per spec.md §4.6: activities are
	// halved, clauses are sorted by (LBD, activity), and the lower half is
	// dropped except for clauses locked as a trail antecedent or with
	// LBD <= 2.
	reduce(eng *sat.Engine)
}

type neverDelete struct{}

func (neverDelete) learntAdded() bool  { return false }
func (neverDelete) reduce(*sat.Engine) {}

// berkMinDeletion implements spec.md §4.6's berk-min policy.
type berkMinDeletion struct {
	sinceLastRound int
	round          int
}

func (d *berkMinDeletion) learntAdded() bool {
	d.sinceLastRound++
	threshold := berkMinBaseFrequency + berkMinRoundStep*d.round
	if d.sinceLastRound >= threshold {
		d.sinceLastRound = 0
		d.round++
		return true
	}
	return false
}

func (d *berkMinDeletion) reduce(eng *sat.Engine) {
	learnts := eng.Learnts()
	for _, c := range learnts {
		c.HalveActivity()
	}

	sort.Slice(learnts, func(i, j int) bool {
		if learnts[i].LBD() != learnts[j].LBD() {
			return learnts[i].LBD() < learnts[j].LBD()
		}
		return learnts[i].Activity() < learnts[j].Activity()
	})

	kept := make([]*sat.Clause, 0, len(learnts))
	for i, c := range learnts {
		spare := i >= len(learnts)/2 || eng.Locked(c) || c.LBD() <= 2
		if spare {
			kept = append(kept, c)
		} else {
			eng.RemoveLearnt(c)
		}
	}
	eng.SetLearnts(kept)
}

func newDeletionManager(policy DeletionPolicy) deletionManager {
	if policy == DeletionBerkMin {
		return &berkMinDeletion{}
	}
	return neverDelete{}
}
