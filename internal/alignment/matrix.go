package alignment

import "strings"

// scoreMatrix is a dense (rows x cols) grid of cell scores stored row-major.
// Cells are 32-bit; callers bound the grid size so scores stay in range.
type scoreMatrix struct {
	cols  int
	cells []int32
}

func newScoreMatrix(rows, cols int) *scoreMatrix {
	return &scoreMatrix{cols: cols, cells: make([]int32, rows*cols)}
}

func (m *scoreMatrix) at(row, col int) int {
	return int(m.cells[row*m.cols+col])
}

func (m *scoreMatrix) setAt(row, col, value int) {
	m.cells[row*m.cols+col] = int32(value)
}

// Cells returns the number of matrix cells an alignment of sequences of
// lengths n and m fills.
func Cells(n, m int) int {
	return (n + 1) * (m + 1)
}

// ProgressiveCells returns an upper bound on the cells filled by the largest
// single step of AlignProgressive over sequences of the given lengths.
// Every alignment column holds at least one residue, so the consensus width
// before step k never exceeds the residues of the first k sequences.
func ProgressiveCells(lengths []int) int {
	maxCells, width := 0, 0
	for k, n := range lengths {
		if k > 0 {
			if c := Cells(width, n); c > maxCells {
				maxCells = c
			}
		}
		width += n
	}
	return maxCells
}

// pointerGrid holds one traceback pointer per matrix cell.
type pointerGrid struct {
	cols  int
	cells []Direction
}

func newPointerGrid(rows, cols int) *pointerGrid {
	return &pointerGrid{cols: cols, cells: make([]Direction, rows*cols)}
}

func (g *pointerGrid) at(row, col int) Direction {
	return g.cells[row*g.cols+col]
}

func (g *pointerGrid) setAt(row, col int, d Direction) {
	g.cells[row*g.cols+col] = d
}

// columnScorer prices the three moves of the alignment recurrence.
// Symbols reaching it have already been checked against the model.
type columnScorer interface {
	// pair scores a of the first sequence against b of the second.
	pair(a, b byte) int
	// gapInSecond scores a of the first sequence against a gap (an up move).
	gapInSecond(a byte) int
	// gapInFirst scores b of the second sequence against a gap (a left move).
	gapInFirst(b byte) int
}

// modelColumns applies a ScoringModel unchanged.
type modelColumns struct {
	model ScoringModel
}

func (c modelColumns) pair(a, b byte) int {
	s, _ := c.model.Score(a, b) // symbols checked before the fill
	return s
}

func (c modelColumns) gapInSecond(byte) int { return c.model.GapCost() }

func (c modelColumns) gapInFirst(byte) int { return c.model.GapCost() }

// best picks the highest of the three candidates. Ties prefer diagonal,
// then up, then left.
func best(diag, up, left int) (int, Direction) {
	score, dir := diag, Diagonal
	if up > score {
		score, dir = up, Up
	}
	if left > score {
		score, dir = left, Left
	}
	return score, dir
}

// traceback walks pointers backwards from (i, j) until done reports true
// and returns the path in forward order together with the cell it stopped at.
func traceback(ptr *pointerGrid, i, j int, done func(i, j int) bool) ([]Direction, int, int) {
	var path []Direction
	for !done(i, j) {
		d := ptr.at(i, j)
		switch d {
		case Diagonal:
			i--
			j--
		case Up:
			i--
		case Left:
			j--
		default:
			// Stop pointer inside the walked region ends the path.
			reversePath(path)
			return path, i, j
		}
		path = append(path, d)
	}
	reversePath(path)
	return path, i, j
}

func reversePath(path []Direction) {
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
}

// render turns a forward path starting at a[i] and b[j] into two aligned strings.
func render(a, b string, i, j int, path []Direction) (string, string) {
	var aligned1, aligned2 strings.Builder
	aligned1.Grow(len(path))
	aligned2.Grow(len(path))

	for _, d := range path {
		switch d {
		case Diagonal:
			aligned1.WriteByte(a[i])
			aligned2.WriteByte(b[j])
			i++
			j++
		case Up:
			aligned1.WriteByte(a[i])
			aligned2.WriteByte(Gap)
			i++
		case Left:
			aligned1.WriteByte(Gap)
			aligned2.WriteByte(b[j])
			j++
		}
	}

	return aligned1.String(), aligned2.String()
}
