package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// Embedding is one vector returned by the embedding endpoint.
type Embedding struct {
	Values []float32 `json:"values"`
}

// EmbeddingResponse is the body of POST /api/get-embedding.
type EmbeddingResponse struct {
	Embeddings []Embedding `json:"embeddings"`
}

// ExtractResumeResponse is the body of POST /api/extract-resume.
type ExtractResumeResponse struct {
	Text string `json:"text"`
}

// BioRequest is the body of POST /api/generate-bio.
type BioRequest struct {
	ResumeText          string `json:"resumeText"`
	WorkStylePreference string `json:"workStylePreference,omitempty"`
	IndustryPreference  string `json:"industryPreference,omitempty"`
	LocationPreference  string `json:"locationPreference,omitempty"`
}

// BioResult is the body of POST /api/generate-bio, or a locally built failure.
type BioResult struct {
	Bio     string `json:"bio"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

var errNoEmbedding = errors.New("response contained no embeddings")

// GetEmbedding returns the embedding of text. On a non-2xx response the
// vector is nil and the error is a *StatusError.
func (c *Client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/get-embedding", text)
	if err != nil {
		return nil, err
	}

	var out EmbeddingResponse
	if err := c.do(req, c.bearer(), &out); err != nil {
		c.fail("get-embedding", err, "")
		return nil, err
	}
	if len(out.Embeddings) == 0 {
		c.fail("get-embedding", errNoEmbedding, "")
		return nil, errNoEmbedding
	}
	return out.Embeddings[0].Values, nil
}

// ExtractResume uploads a resume file and returns its plain text. On a non-2xx
// response the text is empty and the error is a *StatusError.
func (c *Client) ExtractResume(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/extract-resume", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out ExtractResumeResponse
	if err := c.do(req, c.bearer(), &out); err != nil {
		c.fail("extract-resume", err, "We could not read your resume. Please try another file.")
		return "", err
	}
	return out.Text, nil
}

// GenerateBio asks the server to write a bio. A non-2xx response is returned
// as a BioResult with Success false rather than an error.
func (c *Client) GenerateBio(ctx context.Context, in BioRequest) (*BioResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/generate-bio", in)
	if err != nil {
		return nil, err
	}

	var out BioResult
	if err := c.do(req, c.bearer(), &out); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			c.fail("generate-bio", err, "Bio generation failed.")
			return &BioResult{Success: false, Error: statusErr.Message}, nil
		}
		c.fail("generate-bio", err, "")
		return nil, err
	}
	return &out, nil
}
