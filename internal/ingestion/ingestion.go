// Package ingestion turns an uploaded resume file into a validated
// candidate record by delegating extraction to an external AI service
// behind a schema-constrained request.
package ingestion

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/iajcodes/HireC/internal/types"
)

//go:embed candidate_schema.json
var candidateSchemaJSON []byte

// SupportedMediaTypes lists the file types accepted for upload. Anything
// else is rejected locally before any network call.
var SupportedMediaTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

const instruction = "Analyze the provided resume file and extract the candidate's information " +
	"precisely according to the provided JSON schema. Do not add any extra commentary or " +
	"introductory text. Only return the JSON object."

// Generator is the slice of the LLM client the adapter depends on.
type Generator interface {
	GenerateCandidateJSON(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}

// Extractor produces a candidate record from resume file bytes, or a typed
// failure. The core roster logic is testable against a deterministic fake
// in place of the real service.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (*types.Candidate, error)
}

// Adapter implements Extractor over a Generator. One request is issued per
// upload; there is no retry and no backoff.
type Adapter struct {
	gen     Generator
	schema  *gojsonschema.Schema
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout bounds each extraction call. Zero means no timeout, which is
// the default.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithLogger sets the adapter's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// NewAdapter creates an Adapter over the given generator.
func NewAdapter(gen Generator, opts ...Option) (*Adapter, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(candidateSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile candidate schema: %w", err)
	}

	a := &Adapter{gen: gen, schema: schema, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// IsSupportedMediaType reports whether mediaType may be submitted.
func IsSupportedMediaType(mediaType string) bool {
	for _, mt := range SupportedMediaTypes {
		if mt == mediaType {
			return true
		}
	}
	return false
}

// MediaTypeForExtension maps a file extension (with or without the leading
// dot) to its upload media type, or "" when unsupported.
func MediaTypeForExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return "application/pdf"
	case "doc":
		return "application/msword"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "txt":
		return "text/plain"
	default:
		return ""
	}
}

// Extract sends the file to the extraction service and returns the parsed,
// locally re-validated candidate record.
func (a *Adapter) Extract(ctx context.Context, data []byte, mediaType string) (*types.Candidate, error) {
	if !IsSupportedMediaType(mediaType) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"unsupported file type %q: supported types are %s",
			mediaType, strings.Join(SupportedMediaTypes, ", "))}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Message: "resume file is empty"}
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := a.gen.GenerateCandidateJSON(ctx, data, mediaType, instruction)
	if err != nil {
		return nil, &Error{Detail: "extraction service call failed", Cause: err}
	}
	a.logger.Debug("extraction response received",
		zap.String("media_type", mediaType),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(raw)))

	return a.decode(raw)
}

// decode parses and validates the raw response body. The required-field
// check runs even though the request schema nominally enforced it, guarding
// against a non-conforming or truncated response.
func (a *Adapter) decode(raw string) (*types.Candidate, error) {
	result, err := a.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &Error{Detail: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &Error{Detail: "response does not match the candidate schema: " + strings.Join(details, "; ")}
	}

	var candidate types.Candidate
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return nil, &Error{Detail: "failed to decode candidate record", Cause: err}
	}

	if strings.TrimSpace(candidate.Name) == "" || strings.TrimSpace(candidate.Email) == "" {
		return nil, &Error{Detail: "response is missing required fields (name, email)"}
	}

	candidate.Normalize()
	return &candidate, nil
}
