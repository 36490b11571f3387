// Package parsers reads DIMACS CNF files into a sat.Formula (spec.md §4.1),
// built on top of github.com/rhartert/dimacs's line-oriented Builder
// protocol rather than a hand-rolled scanner.
package parsers

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/adrianhallmark/satcore/sat"
)

// formulaBuilder adapts dimacs.Builder to construct a *sat.Formula.
type formulaBuilder struct {
	formula *sat.Formula
	lits    []sat.Literal
	err     error
}

func (b *formulaBuilder) Problem(nVars, nClauses int) {
	b.formula = sat.NewFormula(nVars)
}

func (b *formulaBuilder) Clause(tmpClause []int) {
	if b.err != nil {
		return
	}
	b.lits = b.lits[:0]
	for _, l := range tmpClause {
		switch {
		case l > 0:
			b.lits = append(b.lits, sat.PositiveLiteral(l-1))
		case l < 0:
			b.lits = append(b.lits, sat.NegativeLiteral(-l-1))
		}
	}
	if err := b.formula.AddClause(b.lits); err != nil {
		b.err = err
	}
}

func (b *formulaBuilder) Comment(string) {} // ignore comments, per spec.md §4.1

// ReadFormula reads a DIMACS CNF file from r into a *sat.Formula.
func ReadFormula(r io.Reader) (*sat.Formula, error) {
	b := &formulaBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("parsers: %w", err)
	}
	if b.err != nil {
		return nil, fmt.Errorf("parsers: %w", b.err)
	}
	if b.formula == nil {
		return nil, fmt.Errorf("parsers: no problem line found")
	}
	return b.formula, nil
}

// LoadFormulaFile opens filename (optionally gzip-compressed, matching the
// CLI's --input auto-detection by extension) and reads it as a DIMACS CNF
// formula.
func LoadFormulaFile(filename string, gzipped bool) (*sat.Formula, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("parsers: %w", err)
	}
	defer file.Close()

	var r io.Reader = bufio.NewReader(file)
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("parsers: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ReadFormula(r)
}
