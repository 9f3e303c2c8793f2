package alignment

// AlignLocal performs local alignment using the Smith-Waterman algorithm.
//
// Every cell is floored at zero, so the result covers only the best-scoring
// pair of substrings. The optimum is the first maximal cell in row-major
// order and traceback stops at the first zero cell. When no positive path
// exists the result has score 0 and empty aligned strings. A nil model
// selects DefaultDNA.
func AlignLocal(a, b string, model ScoringModel) (*Alignment, error) {
	if model == nil {
		model = DefaultDNA()
	}
	if err := checkSymbols(a, 0, model); err != nil {
		return nil, err
	}
	if err := checkSymbols(b, 1, model); err != nil {
		return nil, err
	}

	m, n := len(a), len(b)
	cols := modelColumns{model}

	// Row 0 and column 0 stay zero with Stop pointers
	H := newScoreMatrix(m+1, n+1)
	ptr := newPointerGrid(m+1, n+1)

	maxScore := 0
	maxI, maxJ := 0, 0

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			score, dir := best(
				H.at(i-1, j-1)+cols.pair(a[i-1], b[j-1]),
				H.at(i-1, j)+cols.gapInSecond(a[i-1]),
				H.at(i, j-1)+cols.gapInFirst(b[j-1]),
			)
			// Restarting wins ties at zero
			if score <= 0 {
				score, dir = 0, Stop
			}

			H.setAt(i, j, score)
			ptr.setAt(i, j, dir)

			if score > maxScore {
				maxScore = score
				maxI, maxJ = i, j
			}
		}
	}

	if maxScore == 0 {
		return NewAlignmentWithPositions("", "", 0, 0, 0, 0, 0, Local)
	}

	path, start1, start2 := traceback(ptr, maxI, maxJ, func(i, j int) bool { return H.at(i, j) == 0 })
	aligned1, aligned2 := render(a, b, start1, start2, path)

	return NewAlignmentWithPositions(aligned1, aligned2, maxScore,
		start1, maxI, start2, maxJ, Local)
}

// LocalScore calculates the local alignment score without full traceback.
//
// Uses O(n) space instead of O(m*n) by only keeping two rows.
func LocalScore(a, b string, model ScoringModel) (int, error) {
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

	maxScore := 0

	for i := 1; i <= m; i++ {
		currRow[0] = 0

		for j := 1; j <= n; j++ {
			s, _ := model.Score(a[i-1], b[j-1])
			score, _ := best(prevRow[j-1]+s, prevRow[j]+gap, currRow[j-1]+gap)
			if score < 0 {
				score = 0
			}
			currRow[j] = score

			if score > maxScore {
				maxScore = score
			}
		}

		prevRow, currRow = currRow, prevRow
	}

	return maxScore, nil
}
