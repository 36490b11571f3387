// Package proof implements DRUP (Delete Reverse Unit Propagation) proof
// emission for the CDCL solver (spec.md §4.8): a line-oriented trace of
// every learnt clause's addition and every learnt clause's deletion,
// terminated by the empty clause on a refutation.
package proof

import (
	"bufio"
	"fmt"
	"io"
)

// Emitter receives clause additions and deletions as they happen during a
// CDCL solve. Addition is reported before the clause participates in any
// further propagation; deletion is reported at the moment the clause
// deletion policy removes the clause from the learnt database (spec.md
// §4.8).
type Emitter interface {
	// Add emits a clause addition. A nil or empty slice emits the empty
	// clause, which terminates a refutation.
	Add(lits []int)

	// Delete emits a clause deletion.
	Delete(lits []int)

	// Close flushes any buffered output. Callers must call Close once the
	// solve is finished.
	Close() error
}

// Writer is an Emitter that writes the DRUP text format to an io.Writer:
// each addition is a line "lit1 lit2 ... 0" and each deletion is a line
// "d lit1 ... 0".
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w as a DRUP Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (p *Writer) Add(lits []int) {
	p.writeLine("", lits)
}

func (p *Writer) Delete(lits []int) {
	p.writeLine("d ", lits)
}

func (p *Writer) writeLine(prefix string, lits []int) {
	if p.err != nil {
		return
	}
	if _, err := p.w.WriteString(prefix); err != nil {
		p.err = err
		return
	}
	for _, l := range lits {
		if _, err := fmt.Fprintf(p.w, "%d ", l); err != nil {
			p.err = err
			return
		}
	}
	if _, err := p.w.WriteString("0\n"); err != nil {
		p.err = err
	}
}

func (p *Writer) Close() error {
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

// Discard is an Emitter that records nothing; used when --drup is not
// requested but code still wants to pass an Emitter unconditionally.
type Discard struct{}

func (Discard) Add([]int)    {}
func (Discard) Delete([]int) {}
func (Discard) Close() error { return nil }
