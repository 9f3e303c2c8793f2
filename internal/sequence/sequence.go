// Package sequence provides validated DNA, RNA and protein sequences.
//
// Residues are normalized (upper-cased, surrounding whitespace removed)
// before validation. Alignment code consumes the normalized residue strings.
package sequence

import (
	"fmt"
	"strings"
)

// Kind represents the type of biological sequence.
type Kind int

const (
	// Unknown represents an unrecognized residue set
	Unknown Kind = iota
	// DNA represents a DNA sequence (A, C, G, T)
	DNA
	// RNA represents an RNA sequence (A, C, G, U)
	RNA
	// Protein represents an amino-acid sequence
	Protein
)

func (k Kind) String() string {
	switch k {
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Protein:
		return "protein"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name to a Kind. The empty string maps to Unknown,
// which callers treat as "detect".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Unknown, nil
	case "dna":
		return DNA, nil
	case "rna":
		return RNA, nil
	case "protein":
		return Protein, nil
	default:
		return Unknown, fmt.Errorf("unknown sequence kind %q", name)
	}
}

// Normalize upper-cases residues and trims surrounding whitespace.
func Normalize(residues string) string {
	return strings.ToUpper(strings.TrimSpace(residues))
}

// Sequence represents a validated biological sequence.
type Sequence struct {
	Residues    string
	ID          string
	Description string
	Kind        Kind
}

// New creates a sequence, detecting its kind from the residues.
func New(residues string) (*Sequence, error) {
	return WithMetadata(residues, "", "", Unknown)
}

// WithMetadata creates a sequence with full metadata. Kind Unknown
// requests detection.
func WithMetadata(residues, id, description string, kind Kind) (*Sequence, error) {
	normalized := Normalize(residues)
	if len(normalized) == 0 {
		return nil, ErrEmptySequence
	}

	if kind == Unknown {
		kind = Detect(normalized)
		if kind == Unknown {
			// Report against the widest alphabet
			return nil, Validate(normalized, Protein)
		}
	} else if err := Validate(normalized, kind); err != nil {
		return nil, err
	}

	return &Sequence{
		Residues:    normalized,
		ID:          id,
		Description: description,
		Kind:        kind,
	}, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Residues)
}

func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return c
	}
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	if s.Kind != DNA {
		return nil, fmt.Errorf("reverse complement: %w: got %s", ErrNotDNA, s.Kind)
	}

	n := len(s.Residues)
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		rc[n-1-i] = complementBase(s.Residues[i])
	}

	return &Sequence{
		Residues:    string(rc),
		ID:          s.ID,
		Description: s.Description,
		Kind:        DNA,
	}, nil
}

// Transcribe converts DNA to RNA (T -> U).
func (s *Sequence) Transcribe() (*Sequence, error) {
	if s.Kind != DNA {
		return nil, fmt.Errorf("transcribe: %w: got %s", ErrNotDNA, s.Kind)
	}

	return &Sequence{
		Residues:    strings.ReplaceAll(s.Residues, "T", "U"),
		ID:          s.ID,
		Description: s.Description,
		Kind:        RNA,
	}, nil
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	return FormatFASTA(s.ID, s.Description, s.Residues)
}

// FormatFASTA renders one FASTA record with 80-column residue lines.
func FormatFASTA(id, description, residues string) string {
	header := ">sequence"
	if id != "" {
		header = ">" + id
		if description != "" {
			header += " " + description
		}
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')

	for i := 0; i < len(residues); i += 80 {
		end := i + 80
		if end > len(residues) {
			end = len(residues)
		}
		sb.WriteString(residues[i:end])
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Residues)
	}
	return s.Residues
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.Residues == other.Residues && s.Kind == other.Kind
}
