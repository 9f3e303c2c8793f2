// Command seqalign-server provides a REST API for SeqAlign operations.
//
// Usage:
//
//	seqalign-server [options]
//
// Options:
//
//	-port        Port to listen on (default: 8080)
//	-host        Host to bind to (default: localhost)
//	-max-length  Maximum length of any input sequence (default: 10000)
//	-store-size  Number of progressive alignments kept in memory (default: 256)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aria-lang/seqalign-go/api/handlers"
	"github.com/aria-lang/seqalign-go/api/middleware"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	maxLength := flag.Int("max-length", handlers.DefaultMaxLength, "Maximum length of any input sequence")
	storeSize := flag.Int("store-size", handlers.DefaultStoreSize, "Number of progressive alignments kept in memory")
	maxCells := flag.Int("max-cells", handlers.DefaultMaxCells, "Maximum DP cells of a pairwise alignment or progressive step")
	maxSequences := flag.Int("max-sequences", handlers.DefaultMaxSequences, "Maximum sequences in a progressive request")
	flag.Parse()

	api := handlers.NewAPI(handlers.Config{
		MaxLength:    *maxLength,
		StoreSize:    *storeSize,
		MaxCells:     *maxCells,
		MaxSequences: *maxSequences,
	})

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/api", api.Routes())

	// Home page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	log.Printf("SeqAlign v%s API server starting on http://%s (max length %d)\n",
		seqalign.Version(), addr, *maxLength)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>SeqAlign API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>SeqAlign API</h1>
    <p>A REST API for pairwise and multiple sequence alignment.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/global</code>
        <p>Needleman-Wunsch global alignment.</p>
        <pre>{"sequence1": "GATTACA", "sequence2": "GCATGCT"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/local</code>
        <p>Smith-Waterman local alignment with an explicit scoring model.</p>
        <pre>{"sequence1": "PAWHEAE", "sequence2": "HEAGAWGHEE", "scoring": {"model": "blosum62"}}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/progressive</code>
        <p>Progressive multiple alignment; the result is retrievable by id.</p>
        <pre>{"sequences": ["ACGTACGT", "ACGACGT", "CGTACG"]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/consensus</code>
        <p>Per-column consensus of aligned rows.</p>
        <pre>{"rows": ["AC-", "A-G", "AAG"]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/sequence/validate</code>
        <p>Validate a DNA, RNA or protein sequence.</p>
        <pre>{"sequence": "ATGC", "kind": "dna"}</pre>
    </div>
</body>
</html>`
