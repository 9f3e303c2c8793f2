package alignment

// AlignGlobal performs global alignment using the Needleman-Wunsch algorithm.
//
// Both sequences are aligned end to end. When several paths are optimal the
// traceback prefers a diagonal step, then up (gap in b), then left (gap in a),
// so the output is stable. An empty sequence aligns as a run of gaps against
// the other one. A nil model selects DefaultDNA.
func AlignGlobal(a, b string, model ScoringModel) (*Alignment, error) {
	if model == nil {
		model = DefaultDNA()
	}
	if err := checkSymbols(a, 0, model); err != nil {
		return nil, err
	}
	if err := checkSymbols(b, 1, model); err != nil {
		return nil, err
	}

	score, path := globalPath(a, b, modelColumns{model})
	aligned1, aligned2 := render(a, b, 0, 0, path)

	return NewAlignmentWithPositions(aligned1, aligned2, score,
		0, len(a), 0, len(b), Global)
}

// globalPath fills the full Needleman-Wunsch matrix and returns the optimal
// score with its forward traceback path.
func globalPath(a, b string, cols columnScorer) (int, []Direction) {
	m, n := len(a), len(b)

	H := newScoreMatrix(m+1, n+1)
	ptr := newPointerGrid(m+1, n+1)

	// First row and column accumulate gap costs
	for i := 1; i <= m; i++ {
		H.setAt(i, 0, H.at(i-1, 0)+cols.gapInSecond(a[i-1]))
		ptr.setAt(i, 0, Up)
	}
	for j := 1; j <= n; j++ {
		H.setAt(0, j, H.at(0, j-1)+cols.gapInFirst(b[j-1]))
		ptr.setAt(0, j, Left)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			score, dir := best(
				H.at(i-1, j-1)+cols.pair(a[i-1], b[j-1]),
				H.at(i-1, j)+cols.gapInSecond(a[i-1]),
				H.at(i, j-1)+cols.gapInFirst(b[j-1]),
			)
			H.setAt(i, j, score)
			ptr.setAt(i, j, dir)
		}
	}

	path, _, _ := traceback(ptr, m, n, func(i, j int) bool { return i == 0 && j == 0 })
	return H.at(m, n), path
}

// GlobalScore calculates the global alignment score without traceback.
//
// Uses O(n) space by keeping only two rows.
func GlobalScore(a, b string, model ScoringModel) (int, error) {
	if model == nil {
		model = DefaultDNA()
	}
	if err := checkSymbols(a, 0, model); err != nil {
		return 0, err
	}
	if err := checkSymbols(b, 1, model); err != nil {
		return 0, err
	}

	m, n := len(a), len(b)
	gap := model.GapCost()

	prevRow := make([]int, n+1)
	currRow := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prevRow[j] = j * gap
	}

	for i := 1; i <= m; i++ {
		currRow[0] = i * gap

		for j := 1; j <= n; j++ {
			s, _ := model.Score(a[i-1], b[j-1])
			currRow[j], _ = best(prevRow[j-1]+s, prevRow[j]+gap, currRow[j-1]+gap)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n], nil
}
