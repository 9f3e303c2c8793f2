// Package handlers provides HTTP handlers for the SeqAlign API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
)

// Defaults for Config fields left at zero.
const (
	DefaultMaxLength    = 10000
	DefaultStoreSize    = 256
	DefaultMaxCells     = 16_000_000
	DefaultMaxSequences = 100
)

var (
	// ErrTooLong is returned when a request sequence exceeds the configured limit.
	ErrTooLong = errors.New("sequence too long")
	// ErrTooManyCells is returned when an alignment would need a larger DP
	// table than the configured limit.
	ErrTooManyCells = errors.New("alignment too large")
	// ErrTooManySequences is returned when a progressive request carries more
	// sequences than the configured limit.
	ErrTooManySequences = errors.New("too many sequences")
)

// Config holds the API limits.
type Config struct {
	// MaxLength bounds the length of every input sequence or row.
	MaxLength int
	// StoreSize bounds the number of progressive results kept in memory.
	StoreSize int
	// MaxCells bounds the DP table of a pairwise alignment or of any single
	// progressive step.
	MaxCells int
	// MaxSequences bounds the number of sequences in a progressive request.
	MaxSequences int
}

// API serves the alignment endpoints.
type API struct {
	maxLength    int
	maxCells     int
	maxSequences int
	store        *resultStore
}

// NewAPI creates an API with the given limits.
func NewAPI(cfg Config) *API {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.StoreSize <= 0 {
		cfg.StoreSize = DefaultStoreSize
	}
	if cfg.MaxCells <= 0 {
		cfg.MaxCells = DefaultMaxCells
	}
	if cfg.MaxSequences <= 0 {
		cfg.MaxSequences = DefaultMaxSequences
	}
	return &API{
		maxLength:    cfg.MaxLength,
		maxCells:     cfg.MaxCells,
		maxSequences: cfg.MaxSequences,
		store:        newResultStore(cfg.StoreSize),
	}
}

// Routes returns a router serving every endpoint under /api.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/sequence", func(r chi.Router) {
		r.Post("/validate", a.ValidateHandler)
		r.Post("/transcribe", a.TranscribeHandler)
		r.Post("/reverse-complement", a.ReverseComplementHandler)
	})

	r.Route("/alignment", func(r chi.Router) {
		r.Post("/local", a.LocalAlignHandler)
		r.Post("/global", a.GlobalAlignHandler)
		r.Post("/score", a.AlignmentScoreHandler)
		r.Post("/progressive", a.ProgressiveAlignHandler)
		r.Get("/progressive/{id}", a.GetProgressiveHandler)
		r.Post("/consensus", a.ConsensusHandler)
	})

	return r
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), ErrorResponse{Error: err.Error()})
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var residueErr *sequence.InvalidResidueError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, ErrTooLong),
		errors.Is(err, ErrTooManyCells),
		errors.Is(err, ErrTooManySequences),
		errors.Is(err, seqalign.ErrInvalidSymbol),
		errors.Is(err, seqalign.ErrEmptyInput),
		errors.Is(err, seqalign.ErrRaggedRows),
		errors.Is(err, sequence.ErrEmptySequence),
		errors.Is(err, sequence.ErrNotDNA),
		errors.As(err, &residueErr):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	return nil
}

// buildModel turns an optional request scoring block into a model.
func buildModel(cfg *seqalign.ScoringConfig) (seqalign.ScoringModel, error) {
	if cfg == nil {
		return seqalign.DefaultDNA(), nil
	}
	model, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: scoring: %v", errBadRequest, err)
	}
	return model, nil
}

// normalize upper-cases and trims an input, enforcing the length limit.
func (a *API) normalize(name, s string) (string, error) {
	s = sequence.Normalize(s)
	if len(s) > a.maxLength {
		return "", fmt.Errorf("%s: %w: %d > %d", name, ErrTooLong, len(s), a.maxLength)
	}
	return s, nil
}

// checkCells rejects a DP table larger than the configured limit.
func (a *API) checkCells(cells int) error {
	if cells > a.maxCells {
		return fmt.Errorf("%w: %d cells > %d", ErrTooManyCells, cells, a.maxCells)
	}
	return nil
}
