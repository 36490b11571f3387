// Package preprocess implements the CNF preprocessing steps of spec.md
// §4.7: tautology elimination and NiVER (non-increasing variable
// elimination by resolution). Each step transforms a formula into an
// equisatisfiable one; NiVER additionally records enough information to
// extend a model of the reduced formula back into a model of the original.
package preprocess

import (
	"fmt"

	"github.com/adrianhallmark/satcore/sat"
)

// Step names one preprocessing step, matching the --cdcl-preproc CLI
// values of spec.md §6.
type Step string

const (
	StepTautologies Step = "tautologies"
	StepNiVER       Step = "niver"
)

// Pipeline runs an ordered sequence of preprocessing steps and remembers
// enough to extend a model of the final formula back to the original one.
type Pipeline struct {
	steps []Step
	niver *niverState
}

// NewPipeline builds a Pipeline that will run the given steps, in order,
// when Run is called.
func NewPipeline(steps []Step) (*Pipeline, error) {
	for _, s := range steps {
		switch s {
		case StepTautologies, StepNiVER:
		default:
			return nil, fmt.Errorf("preprocess: unknown step %q", s)
		}
	}
	return &Pipeline{steps: steps}, nil
}

// Run applies every configured step to f in order and returns the
// resulting equisatisfiable formula. f itself is not mutated.
func (p *Pipeline) Run(f *sat.Formula) *sat.Formula {
	cur := f
	for _, step := range p.steps {
		switch step {
		case StepTautologies:
			cur = dropTautologies(cur)
		case StepNiVER:
			cur, p.niver = runNiVER(cur)
		}
	}
	return cur
}

// ExtendModel extends a model of the preprocessed formula back into a model
// of the original formula passed to Run, reverse-eliminating any variables
// NiVER removed (spec.md §4.7). If NiVER was not among the configured
// steps, it returns model unchanged.
func (p *Pipeline) ExtendModel(model []bool) []bool {
	if p.niver == nil {
		return model
	}
	return p.niver.extend(model)
}
