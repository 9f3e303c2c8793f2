package alignment

import (
	"fmt"
	"strings"
)

// MultipleAlignment is an ordered set of aligned rows sharing one width.
type MultipleAlignment struct {
	Rows []string
}

// Len returns the number of rows.
func (m *MultipleAlignment) Len() int {
	return len(m.Rows)
}

// Width returns the number of columns.
func (m *MultipleAlignment) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Consensus returns the per-column majority row.
func (m *MultipleAlignment) Consensus() (string, error) {
	return Consensus(m.Rows)
}

// Ungapped returns row i with its gap symbols removed.
func (m *MultipleAlignment) Ungapped(i int) string {
	return strings.ReplaceAll(m.Rows[i], string(Gap), "")
}

// profileColumns scores a consensus row, which may hold gap columns,
// against a plain sequence. A consensus gap left facing a gap is free;
// a residue placed in a consensus gap column costs one gap.
type profileColumns struct {
	model ScoringModel
}

func (c profileColumns) pair(a, b byte) int {
	if a == Gap {
		return c.model.GapCost()
	}
	s, _ := c.model.Score(a, b) // symbols checked before the fill
	return s
}

func (c profileColumns) gapInSecond(a byte) int {
	if a == Gap {
		return 0
	}
	return c.model.GapCost()
}

func (c profileColumns) gapInFirst(byte) int { return c.model.GapCost() }

// AlignProgressive folds seqs, in the given order, into one multiple alignment.
//
// The first sequence seeds the alignment. Each following sequence is
// globally aligned against the consensus of the rows accumulated so far;
// columns the new sequence needs are inserted as gaps into every earlier
// row. The result depends on input order. A nil model selects DefaultDNA.
func AlignProgressive(seqs []string, model ScoringModel) (*MultipleAlignment, error) {
	if len(seqs) == 0 {
		return nil, ErrEmptyInput
	}
	if model == nil {
		model = DefaultDNA()
	}
	for i, s := range seqs {
		if err := checkSymbols(s, i, model); err != nil {
			return nil, err
		}
	}

	rank := rankTable(model.Alphabet())
	rows := [][]byte{[]byte(seqs[0])}

	for k, s := range seqs[1:] {
		representative := string(consensusColumns(rows, rank))
		_, path := globalPath(representative, s, profileColumns{model})

		merged, err := mergeRow(rows, s, path)
		if err != nil {
			return nil, fmt.Errorf("merging sequence %d: %w", k+2, err)
		}
		rows = merged
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = string(row)
	}
	return &MultipleAlignment{Rows: out}, nil
}

// mergeRow threads the existing rows and s through a path computed against
// their consensus and returns the rows with s appended.
func mergeRow(rows [][]byte, s string, path []Direction) ([][]byte, error) {
	width := len(path)
	merged := make([][]byte, len(rows)+1)
	for r := range merged {
		merged[r] = make([]byte, 0, width)
	}
	last := len(rows)

	col, k := 0, 0
	for _, d := range path {
		switch d {
		case Diagonal:
			for r, row := range rows {
				merged[r] = append(merged[r], row[col])
			}
			merged[last] = append(merged[last], s[k])
			col++
			k++
		case Up:
			for r, row := range rows {
				merged[r] = append(merged[r], row[col])
			}
			merged[last] = append(merged[last], Gap)
			col++
		case Left:
			for r := range rows {
				merged[r] = append(merged[r], Gap)
			}
			merged[last] = append(merged[last], s[k])
			k++
		}
	}

	if col != len(rows[0]) || k != len(s) {
		return nil, fmt.Errorf("%w: path consumed %d/%d columns and %d/%d residues",
			ErrLengthMismatch, col, len(rows[0]), k, len(s))
	}
	for r, row := range merged {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrLengthMismatch, r+1, len(row), width)
		}
	}

	return merged, nil
}
