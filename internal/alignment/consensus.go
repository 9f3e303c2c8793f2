package alignment

import "fmt"

// Consensus derives the per-column majority symbol of equal-length rows.
//
// The gap symbol is counted like any other symbol. Ties between equally
// frequent symbols go to the lowest byte value, and a gap only wins a tie
// when no residue shares its count. A column made only of gaps yields a gap.
func Consensus(rows []string) (string, error) {
	return ConsensusWithPriority(rows, "")
}

// ConsensusWithPriority is Consensus with an explicit tie-break order:
// symbols listed in priority win ties in the listed order, followed by any
// other residue in byte order, followed by the gap.
func ConsensusWithPriority(rows []string, priority string) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}
	width := len(rows[0])
	for i, row := range rows[1:] {
		if len(row) != width {
			return "", fmt.Errorf("%w: row %d has %d columns, row 1 has %d",
				ErrRaggedRows, i+2, len(row), width)
		}
	}

	return string(consensusColumns(rows, rankTable(priority))), nil
}

// rankTable orders every byte for tie-breaking; lower ranks win.
func rankTable(priority string) *[256]int {
	var rank [256]int
	for c := range rank {
		rank[c] = len(priority) + c
	}
	for i := len(priority) - 1; i >= 0; i-- {
		rank[priority[i]] = i
	}
	rank[Gap] = len(priority) + len(rank)
	return &rank
}

// consensusColumns assumes rows are non-empty and of equal length.
func consensusColumns[S ~string | ~[]byte](rows []S, rank *[256]int) []byte {
	width := len(rows[0])
	out := make([]byte, width)

	var counts [256]int
	for col := 0; col < width; col++ {
		counts = [256]int{}
		for _, row := range rows {
			counts[row[col]]++
		}

		winner, top := Gap, 0
		for c, n := range counts {
			if n == 0 {
				continue
			}
			if n > top || (n == top && rank[c] < rank[winner]) {
				winner, top = byte(c), n
			}
		}
		out[col] = winner
	}

	return out
}
