// Command server exposes the shingle-overlap similarity pipeline over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
	"github.com/baditaflorin/go_shingle_similarity/pkg/shingle"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

// CompareRequest asks for a single pairwise comparison.
type CompareRequest struct {
	Original  string `json:"original"`
	Candidate string `json:"candidate"`
}

// RankRequest asks for a full ranking run over a set of documents.
// Parameter fields are pointers so that an absent field and an explicit
// zero (e.g. "threshold": 0) remain distinguishable.
type RankRequest struct {
	Documents []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"documents"`
	ShingleSize *int     `json:"shingle_size,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
	MaxResults  *int     `json:"max_results,omitempty"`
}

// CompareResponse carries one comparison outcome.
type CompareResponse struct {
	IDs        [2]string `json:"ids"`
	Overlap    int       `json:"overlap"`
	Similarity float64   `json:"similarity"`
}

// RankResponse carries the ranked report of a run.
type RankResponse struct {
	Results    []CompareResponse `json:"results"`
	Degenerate []string          `json:"degenerate,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	similarity *shingle.Similarity
	logger     l.Logger

	// Startup flag values, the baseline for per-request overrides.
	shingleSize int
	threshold   float64
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	shingleSize := flag.Int("shingle-size", shingle.DefaultShingleSize, "Tokens per shingle")
	threshold := flag.Float64("threshold", shingle.DefaultThreshold, "Similarity threshold for /rank")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	logger, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting shingle similarity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"shingle_size", *shingleSize,
		"threshold", *threshold,
	)

	opts := []shingle.Option{
		shingle.WithLogger(logger),
		shingle.WithShingleSize(*shingleSize),
		shingle.WithThreshold(*threshold),
		shingle.WithOptimizedNormalizer(),
	}
	if *warmUp {
		opts = append(opts, shingle.WithWarmUp(true))
	}

	similarity, err := shingle.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize similarity pipeline", "error", err)
		os.Exit(1)
	}

	srv := &server{
		similarity:  similarity,
		logger:      logger,
		shingleSize: *shingleSize,
		threshold:   *threshold,
	}

	httpServer := &fasthttp.Server{
		Handler:               srv.handleRequest,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := httpServer.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// handleRequest routes requests by path.
func (s *server) handleRequest(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "ShingleSimilarityServer")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/compare":
		s.handleCompare(ctx)
	case "/rank":
		s.handleRank(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Original == "" || req.Candidate == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Both original and candidate texts are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmp, err := s.similarity.CompareTexts(c, "original", req.Original, "candidate", req.Candidate)
	if err != nil {
		var degenerate *domain.DegenerateDocumentError
		if errors.As(err, &degenerate) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			s.writeJSONError(ctx, err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, CompareResponse{
		IDs:        cmp.IDs,
		Overlap:    cmp.Overlap,
		Similarity: cmp.Similarity,
	})
}

func (s *server) handleRank(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req RankRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Documents) < 2 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "At least two documents are required")
		return
	}

	// Per-request parameters override the server defaults.
	similarity := s.similarity
	if req.ShingleSize != nil || req.Threshold != nil || req.MaxResults != nil {
		var err error
		similarity, err = buildPipeline(s.logger, s.shingleSize, s.threshold, req)
		if err != nil {
			var invalid *domain.InvalidParameterError
			if errors.As(err, &invalid) {
				ctx.SetStatusCode(fasthttp.StatusBadRequest)
			} else {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			}
			s.writeJSONError(ctx, err.Error())
			return
		}
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	sources := make([]domain.Source, 0, len(req.Documents))
	for _, d := range req.Documents {
		sources = append(sources, domain.Source{ID: d.ID, Text: d.Text})
	}

	report, err := similarity.Rank(c, sources)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, err.Error())
		return
	}

	results := make([]CompareResponse, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, CompareResponse{
			IDs:        r.IDs,
			Overlap:    r.Overlap,
			Similarity: r.Similarity,
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, RankResponse{
		Results:    results,
		Degenerate: report.Degenerate,
	})
}

// buildPipeline constructs a pipeline for one request. The server's startup
// parameters are the baseline; only fields present in the request replace
// them.
func buildPipeline(logger l.Logger, shingleSize int, threshold float64, req RankRequest) (*shingle.Similarity, error) {
	if req.ShingleSize != nil {
		shingleSize = *req.ShingleSize
	}
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	opts := []shingle.Option{
		shingle.WithLogger(logger),
		shingle.WithOptimizedNormalizer(),
		shingle.WithShingleSize(shingleSize),
		shingle.WithThreshold(threshold),
	}
	if req.MaxResults != nil {
		opts = append(opts, shingle.WithMaxResults(*req.MaxResults))
	}
	return shingle.New(opts...)
}

// writeJSONResponse writes a JSON response to the context.
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context.
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}

// createLogger creates and configures a logger.
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
