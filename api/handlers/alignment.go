package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
)

// AlignmentRequest represents a pairwise alignment request.
type AlignmentRequest struct {
	Sequence1 string                  `json:"sequence1"`
	Sequence2 string                  `json:"sequence2"`
	Scoring   *seqalign.ScoringConfig `json:"scoring,omitempty"`
	// Mode selects "local" (default) or "global" for score requests.
	Mode string `json:"mode,omitempty"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Type        string  `json:"type"`
	Start1      int     `json:"start1"`
	End1        int     `json:"end1"`
	Start2      int     `json:"start2"`
	End2        int     `json:"end2"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
	GapOpenings int     `json:"gap_openings"`
}

func newAlignmentResponse(a *seqalign.Alignment) AlignmentResponse {
	return AlignmentResponse{
		AlignedSeq1: a.AlignedSeq1,
		AlignedSeq2: a.AlignedSeq2,
		Score:       a.Score,
		Type:        a.AlignmentType.String(),
		Start1:      a.Start1,
		End1:        a.End1,
		Start2:      a.Start2,
		End2:        a.End2,
		Identity:    a.Identity,
		CIGAR:       a.ToCIGAR(),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		Gaps:        a.TotalGaps(),
		GapOpenings: a.GapOpenings(),
	}
}

// pairInput decodes and normalizes a pairwise request.
func (a *API) pairInput(r *http.Request) (string, string, seqalign.ScoringModel, *AlignmentRequest, error) {
	var req AlignmentRequest
	if err := decode(r, &req); err != nil {
		return "", "", nil, nil, err
	}

	seq1, err := a.normalize("sequence1", req.Sequence1)
	if err != nil {
		return "", "", nil, nil, err
	}
	seq2, err := a.normalize("sequence2", req.Sequence2)
	if err != nil {
		return "", "", nil, nil, err
	}
	if err := a.checkCells(seqalign.Cells(len(seq1), len(seq2))); err != nil {
		return "", "", nil, nil, err
	}

	model, err := buildModel(req.Scoring)
	if err != nil {
		return "", "", nil, nil, err
	}
	return seq1, seq2, model, &req, nil
}

// LocalAlignHandler handles local alignment requests.
func (a *API) LocalAlignHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, model, _, err := a.pairInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	alignment, err := seqalign.AlignLocal(seq1, seq2, model)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAlignmentResponse(alignment))
}

// GlobalAlignHandler handles global alignment requests.
func (a *API) GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, model, _, err := a.pairInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	alignment, err := seqalign.AlignGlobal(seq1, seq2, model)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAlignmentResponse(alignment))
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int    `json:"score"`
	Mode  string `json:"mode"`
}

// AlignmentScoreHandler handles alignment score requests.
func (a *API) AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, model, req, err := a.pairInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var alignType seqalign.AlignmentType
	switch strings.ToLower(req.Mode) {
	case "", "local":
		alignType = seqalign.Local
	case "global":
		alignType = seqalign.Global
	default:
		writeError(w, fmt.Errorf("%w: unknown mode %q", errBadRequest, req.Mode))
		return
	}

	score, err := seqalign.Score(seq1, seq2, model, alignType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{Score: score, Mode: alignType.String()})
}
