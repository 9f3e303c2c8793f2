// Command seqalign provides a CLI for biological sequence alignment.
//
// Usage:
//
//	seqalign [command] [options]
//
// Commands:
//
//	global      Needleman-Wunsch global alignment of two sequences
//	local       Smith-Waterman local alignment of two sequences
//	search      Align a query against every sequence of a FASTA file
//	msa         Progressive multiple alignment
//	consensus   Consensus of aligned rows
//	validate    Validate sequences
//	version     Show version information
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "global":
		pairCmd("global", os.Args[2:])
	case "local":
		pairCmd("local", os.Args[2:])
	case "search":
		searchCmd(os.Args[2:])
	case "msa":
		msaCmd(os.Args[2:])
	case "consensus":
		consensusCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "version":
		fmt.Println(seqalign.Info())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`SeqAlign - Biological Sequence Alignment Tool

Usage:
  seqalign <command> [options]

Commands:
  global     Global alignment of two sequences
  local      Local alignment of two sequences
  search     Align a query against every sequence of a FASTA file
  msa        Progressive multiple alignment
  consensus  Consensus of aligned rows
  validate   Validate sequences, optionally transcribing or reverse-complementing DNA
  version    Show version information
  help       Show this help message

Scoring options (global, local, search, msa):
  -model     dna, rna, parametric or blosum62 (default: dna)
  -match     Match score for parametric models (default: 1)
  -mismatch  Mismatch score for parametric models (default: -1)
  -gap       Linear gap cost (default: -1)
  -alphabet  Alphabet of a parametric model

Use "seqalign <command> -h" for more information about a command.`)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// scoringFlags registers the shared scoring options on fs.
func scoringFlags(fs *flag.FlagSet) *seqalign.ScoringConfig {
	cfg := &seqalign.ScoringConfig{Gap: new(int)}
	fs.StringVar(&cfg.Model, "model", "dna", "Scoring model: dna, rna, parametric or blosum62")
	fs.IntVar(&cfg.Match, "match", 1, "Match score for parametric models")
	fs.IntVar(&cfg.Mismatch, "mismatch", -1, "Mismatch score for parametric models")
	fs.IntVar(cfg.Gap, "gap", seqalign.DefaultGapCost, "Linear gap cost")
	fs.StringVar(&cfg.Alphabet, "alphabet", "", "Alphabet of a parametric model")
	return cfg
}

func buildModel(cfg *seqalign.ScoringConfig) seqalign.ScoringModel {
	model, err := cfg.Build()
	if err != nil {
		fatalf("Error building scoring model: %v", err)
	}
	return model
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// readSequences loads sequences from a FASTA file or from inline values.
func readSequences(file string, inline []string) ([]string, []string) {
	if file != "" {
		sequences, err := seqalign.ReadFASTA(file)
		if err != nil {
			fatalf("Error reading file: %v", err)
		}
		ids := make([]string, len(sequences))
		residues := make([]string, len(sequences))
		for i, s := range sequences {
			ids[i] = s.ID
			residues[i] = s.Residues
		}
		return ids, residues
	}

	residues := make([]string, len(inline))
	for i, s := range inline {
		residues[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return nil, residues
}

func pairCmd(mode string, args []string) {
	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	seq1 := fs.String("seq1", "", "First sequence")
	seq2 := fs.String("seq2", "", "Second sequence")
	cigar := fs.Bool("cigar", false, "Also print the CIGAR string")
	cfg := scoringFlags(fs)
	fs.Parse(args)

	if *seq1 == "" || *seq2 == "" {
		fmt.Fprintln(os.Stderr, "Error: Both -seq1 and -seq2 are required")
		fs.Usage()
		os.Exit(1)
	}

	_, seqs := readSequences("", []string{*seq1, *seq2})
	model := buildModel(cfg)

	var alignment *seqalign.Alignment
	var err error
	if mode == "global" {
		alignment, err = seqalign.AlignGlobal(seqs[0], seqs[1], model)
	} else {
		alignment, err = seqalign.AlignLocal(seqs[0], seqs[1], model)
	}
	if err != nil {
		fatalf("Error aligning sequences: %v", err)
	}

	fmt.Println(alignment.Format())
	if *cigar {
		fmt.Printf("CIGAR: %s\n", alignment.ToCIGAR())
	}
}

func searchCmd(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "Query sequence")
	file := fs.String("file", "", "FASTA file of target sequences")
	global := fs.Bool("global", false, "Use global alignment (Needleman-Wunsch)")
	best := fs.Bool("best", false, "Print only the best-scoring target")
	cfg := scoringFlags(fs)
	fs.Parse(args)

	if *query == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "Error: Both -query and -file are required")
		fs.Usage()
		os.Exit(1)
	}

	ids, targets := readSequences(*file, nil)
	_, q := readSequences("", []string{*query})
	model := buildModel(cfg)

	alignType := seqalign.Local
	if *global {
		alignType = seqalign.Global
	}

	var alignments []seqalign.IndexedAlignment
	if *best {
		top, err := seqalign.FindBestAlignment(q[0], targets, model, alignType)
		if err != nil {
			fatalf("Error aligning sequences: %v", err)
		}
		alignments = []seqalign.IndexedAlignment{*top}
	} else {
		var err error
		alignments, err = seqalign.AlignAgainstMultiple(q[0], targets, model, alignType)
		if err != nil {
			fatalf("Error aligning sequences: %v", err)
		}
	}

	for _, ia := range alignments {
		fmt.Printf("%s\tscore=%d\tidentity=%.2f%%\tcigar=%s\n",
			ids[ia.Index], ia.Alignment.Score, ia.Alignment.Identity*100, ia.Alignment.ToCIGAR())
	}
}

func msaCmd(args []string) {
	fs := flag.NewFlagSet("msa", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file of sequences to align")
	var inline stringList
	fs.Var(&inline, "seq", "Sequence to align (repeatable)")
	out := fs.String("out", "", "Write aligned FASTA to this file instead of stdout")
	withConsensus := fs.Bool("consensus", false, "Append the consensus as a final record")
	showStats := fs.Bool("stats", false, "Print alignment statistics and a row length histogram to stderr")
	bins := fs.Int("bins", 5, "Number of histogram bins printed with -stats")
	cfg := scoringFlags(fs)
	fs.Parse(args)

	if *file == "" && len(inline) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	ids, seqs := readSequences(*file, inline)
	model := buildModel(cfg)

	msa, err := seqalign.AlignProgressive(seqs, model)
	if err != nil {
		fatalf("Error aligning sequences: %v", err)
	}

	if *showStats {
		summary, err := seqalign.AlignmentStatistics(msa)
		if err != nil {
			fatalf("Error computing statistics: %v", err)
		}
		fmt.Fprintln(os.Stderr, summary)

		hist, err := seqalign.LengthHistogram(msa, *bins)
		if err != nil {
			fatalf("Error computing histogram: %v", err)
		}
		fmt.Fprint(os.Stderr, hist)
	}

	result := msa
	if *withConsensus {
		consensus, err := msa.Consensus()
		if err != nil {
			fatalf("Error computing consensus: %v", err)
		}
		rows := append(append([]string{}, msa.Rows...), consensus)
		result = &seqalign.MultipleAlignment{Rows: rows}
		ids = append(fillIDs(ids, msa.Len()), "consensus")
	}

	if *out == "" {
		err = seqalign.WriteAlignmentFASTA(os.Stdout, ids, result)
	} else {
		err = writeAlignmentFile(*out, ids, result)
	}
	if err != nil {
		fatalf("Error writing alignment: %v", err)
	}
}

// writeAlignmentFile writes msa as aligned FASTA to path. The file is closed
// before returning so that a failed flush is reported.
func writeAlignmentFile(path string, ids []string, msa *seqalign.MultipleAlignment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := seqalign.WriteAlignmentFASTA(f, ids, msa); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fillIDs pads ids to n entries with the default row names.
func fillIDs(ids []string, n int) []string {
	filled := make([]string, n)
	for i := range filled {
		if i < len(ids) && ids[i] != "" {
			filled[i] = ids[i]
		} else {
			filled[i] = fmt.Sprintf("seq%d", i+1)
		}
	}
	return filled
}

func consensusCmd(args []string) {
	fs := flag.NewFlagSet("consensus", flag.ExitOnError)
	file := fs.String("file", "", "Aligned FASTA file")
	var inline stringList
	fs.Var(&inline, "row", "Aligned row (repeatable)")
	fs.Parse(args)

	if *file == "" && len(inline) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -row is required")
		fs.Usage()
		os.Exit(1)
	}

	var rows []string
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fatalf("Error opening file: %v", err)
		}
		defer f.Close()
		_, rows, err = seqalign.ParseAlignedFASTA(f)
		if err != nil {
			fatalf("Error reading file: %v", err)
		}
	} else {
		_, rows = readSequences("", inline)
	}

	consensus, err := seqalign.Consensus(rows)
	if err != nil {
		fatalf("Error computing consensus: %v", err)
	}
	fmt.Println(consensus)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to validate")
	seq := fs.String("seq", "", "Sequence string to validate")
	transcribe := fs.Bool("transcribe", false, "Print the RNA transcript of each DNA sequence")
	revcomp := fs.Bool("revcomp", false, "Print the reverse complement of each DNA sequence")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var sequences []*seqalign.Sequence
	if *file != "" {
		var err error
		sequences, err = seqalign.ReadFASTA(*file)
		if err != nil {
			fatalf("Invalid: %v", err)
		}
	} else {
		s, err := seqalign.NewSequence(*seq)
		if err != nil {
			fatalf("Invalid: %v", err)
		}
		sequences = []*seqalign.Sequence{s}
	}

	for i, s := range sequences {
		id := s.ID
		if id == "" {
			id = fmt.Sprintf("sequence %d", i+1)
		}
		fmt.Printf("%s: valid %s, %d residues\n", id, s.Kind, s.Len())

		if *transcribe {
			rna, err := s.Transcribe()
			if err != nil {
				fatalf("%s: %v", id, err)
			}
			fmt.Print(rna.ToFASTA())
		}
		if *revcomp {
			rc, err := s.ReverseComplement()
			if err != nil {
				fatalf("%s: %v", id, err)
			}
			fmt.Print(rc.ToFASTA())
		}
	}
}
