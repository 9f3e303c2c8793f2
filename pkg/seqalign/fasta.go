package seqalign

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader. Residues are normalized and
// each record's kind is detected. Records without residues are skipped.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	err := scanFASTA(r, func(id, desc, residues string, line int) error {
		seq, err := sequence.WithMetadata(residues, id, desc, sequence.Unknown)
		if err != nil {
			return fmt.Errorf("record at line %d: %w", line, err)
		}
		sequences = append(sequences, seq)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sequences, nil
}

// ParseAlignedFASTA parses aligned FASTA, returning record ids and
// upper-cased rows. Rows are not validated and may hold gap symbols.
func ParseAlignedFASTA(r io.Reader) ([]string, []string, error) {
	var ids, rows []string
	err := scanFASTA(r, func(id, _ string, residues string, _ int) error {
		ids = append(ids, id)
		rows = append(rows, sequence.Normalize(residues))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ids, rows, nil
}

// scanFASTA calls emit once per record holding residues, with the line
// number of its header.
func scanFASTA(r io.Reader, emit func(id, desc, residues string, line int) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var currentID, currentDesc string
	var currentResidues strings.Builder
	lineNum, recordLine := 0, 0

	flushRecord := func() error {
		if currentResidues.Len() == 0 {
			return nil
		}
		defer currentResidues.Reset()
		return emit(currentID, currentDesc, currentResidues.String(), recordLine)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++

		if len(line) == 0 || line[0] == ';' {
			continue
		}

		if line[0] == '>' {
			if err := flushRecord(); err != nil {
				return err
			}

			parts := strings.SplitN(strings.TrimSpace(line[1:]), " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = strings.TrimSpace(parts[1])
			} else {
				currentDesc = ""
			}
			recordLine = lineNum
		} else {
			if recordLine == 0 {
				recordLine = lineNum
			}
			currentResidues.WriteString(line)
		}
	}

	if err := flushRecord(); err != nil {
		return err
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return nil
}

// WriteFASTA writes sequences in FASTA format.
func WriteFASTA(w io.Writer, sequences []*Sequence) error {
	for _, seq := range sequences {
		if _, err := io.WriteString(w, seq.ToFASTA()); err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}
	return nil
}

// WriteAlignmentFASTA writes the rows of a multiple alignment as aligned
// FASTA. Rows without a matching id are named seq1, seq2, ...
func WriteAlignmentFASTA(w io.Writer, ids []string, msa *MultipleAlignment) error {
	if msa == nil {
		return ErrEmptyInput
	}
	bw := bufio.NewWriter(w)
	for i, row := range msa.Rows {
		id := fmt.Sprintf("seq%d", i+1)
		if i < len(ids) && ids[i] != "" {
			id = ids[i]
		}
		if _, err := bw.WriteString(sequence.FormatFASTA(id, "", row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return bw.Flush()
}
