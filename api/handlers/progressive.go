package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
)

// ProgressiveRequest represents a multiple alignment request. Sequences are
// folded into the alignment in the order given.
type ProgressiveRequest struct {
	Sequences []string                `json:"sequences"`
	Scoring   *seqalign.ScoringConfig `json:"scoring,omitempty"`
}

// ProgressiveResponse represents a stored multiple alignment.
type ProgressiveResponse struct {
	ID        string    `json:"id"`
	Rows      []string  `json:"rows"`
	Consensus string    `json:"consensus"`
	Width     int       `json:"width"`
	Created   time.Time `json:"created"`
	Stats     *Stats    `json:"stats,omitempty"`
}

// Stats summarizes a stored multiple alignment.
type Stats struct {
	ConservedColumns int     `json:"conserved_columns"`
	GapOnlyColumns   int     `json:"gap_only_columns"`
	GapFraction      float64 `json:"gap_fraction"`
	MeanIdentity     float64 `json:"mean_identity"`
}

func newProgressiveResponse(entry *storedAlignment) ProgressiveResponse {
	width := 0
	if len(entry.Rows) > 0 {
		width = len(entry.Rows[0])
	}
	return ProgressiveResponse{
		ID:        entry.ID,
		Rows:      entry.Rows,
		Consensus: entry.Consensus,
		Width:     width,
		Created:   entry.Created,
		Stats:     entry.Stats,
	}
}

// ProgressiveAlignHandler aligns the request sequences and stores the result.
func (a *API) ProgressiveAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req ProgressiveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if len(req.Sequences) > a.maxSequences {
		writeError(w, fmt.Errorf("%w: %d > %d", ErrTooManySequences, len(req.Sequences), a.maxSequences))
		return
	}

	seqs := make([]string, len(req.Sequences))
	lengths := make([]int, len(req.Sequences))
	for i, s := range req.Sequences {
		normalized, err := a.normalize(fmt.Sprintf("sequences[%d]", i), s)
		if err != nil {
			writeError(w, err)
			return
		}
		seqs[i] = normalized
		lengths[i] = len(normalized)
	}
	if err := a.checkCells(seqalign.ProgressiveCells(lengths)); err != nil {
		writeError(w, err)
		return
	}

	model, err := buildModel(req.Scoring)
	if err != nil {
		writeError(w, err)
		return
	}

	msa, err := seqalign.AlignProgressive(seqs, model)
	if err != nil {
		writeError(w, err)
		return
	}

	consensus, err := msa.Consensus()
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := seqalign.AlignmentStatistics(msa)
	if err != nil {
		writeError(w, err)
		return
	}

	entry := a.store.put(msa.Rows, consensus, &Stats{
		ConservedColumns: summary.ConservedColumns,
		GapOnlyColumns:   summary.GapOnlyColumns,
		GapFraction:      summary.GapFraction,
		MeanIdentity:     summary.MeanIdentity,
	})
	writeJSON(w, http.StatusCreated, newProgressiveResponse(entry))
}

// GetProgressiveHandler returns a previously stored multiple alignment.
func (a *API) GetProgressiveHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := a.store.get(id)
	if !ok {
		writeError(w, fmt.Errorf("alignment %q: %w", id, errNotFound))
		return
	}
	writeJSON(w, http.StatusOK, newProgressiveResponse(entry))
}

// ConsensusRequest carries aligned rows of equal length.
type ConsensusRequest struct {
	Rows []string `json:"rows"`
}

// ConsensusResponse represents the response for consensus.
type ConsensusResponse struct {
	Consensus string `json:"consensus"`
}

// ConsensusHandler computes the consensus of caller-supplied aligned rows.
func (a *API) ConsensusHandler(w http.ResponseWriter, r *http.Request) {
	var req ConsensusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rows := make([]string, len(req.Rows))
	for i, row := range req.Rows {
		normalized, err := a.normalizeRow(fmt.Sprintf("rows[%d]", i), row)
		if err != nil {
			writeError(w, err)
			return
		}
		rows[i] = normalized
	}

	consensus, err := seqalign.Consensus(rows)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConsensusResponse{Consensus: consensus})
}

// normalizeRow upper-cases an aligned row. Rows are never trimmed, since
// dropping characters would shift every later column.
func (a *API) normalizeRow(name, row string) (string, error) {
	if i := strings.IndexFunc(row, unicode.IsSpace); i >= 0 {
		return "", fmt.Errorf("%w: %s: whitespace at column %d", errBadRequest, name, i)
	}
	if len(row) > a.maxLength {
		return "", fmt.Errorf("%s: %w: %d > %d", name, ErrTooLong, len(row), a.maxLength)
	}
	return strings.ToUpper(row), nil
}
