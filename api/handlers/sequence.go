package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
	// Kind is "dna", "rna" or "protein"; empty requests detection.
	Kind string `json:"kind,omitempty"`
}

// ValidateResponse represents the response for validation.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Length  int    `json:"length,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidateHandler handles sequence validation requests. An invalid sequence
// is reported in the body, not as an error status.
func (a *API) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	kind, err := sequence.ParseKind(req.Kind)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	residues, err := a.normalize("sequence", req.Sequence)
	if err != nil {
		writeError(w, err)
		return
	}

	seq, err := sequence.WithMetadata(residues, "", "", kind)
	if err != nil {
		writeJSON(w, http.StatusOK, ValidateResponse{
			Valid:   false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:  true,
		Kind:   seq.Kind.String(),
		Length: seq.Len(),
	})
}

// TransformResponse carries a derived sequence.
type TransformResponse struct {
	Sequence string `json:"sequence"`
	Kind     string `json:"kind"`
	Length   int    `json:"length"`
}

// TranscribeHandler converts a DNA sequence to RNA.
func (a *API) TranscribeHandler(w http.ResponseWriter, r *http.Request) {
	a.transform(w, r, (*sequence.Sequence).Transcribe)
}

// ReverseComplementHandler returns the reverse complement of a DNA sequence.
func (a *API) ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	a.transform(w, r, (*sequence.Sequence).ReverseComplement)
}

func (a *API) transform(w http.ResponseWriter, r *http.Request,
	fn func(*sequence.Sequence) (*sequence.Sequence, error)) {
	var req SequenceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	residues, err := a.normalize("sequence", req.Sequence)
	if err != nil {
		writeError(w, err)
		return
	}

	seq, err := sequence.WithMetadata(residues, "", "", sequence.DNA)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := fn(seq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransformResponse{
		Sequence: out.Residues,
		Kind:     out.Kind.String(),
		Length:   out.Len(),
	})
}
