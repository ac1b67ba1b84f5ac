package compile

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Compiler produces PDF bytes from a LaTeX document.
type Compiler interface {
	Compile(ctx context.Context, document string) ([]byte, error)
}

// DefaultHTTPTimeout bounds one compile request to the external collaborator.
const DefaultHTTPTimeout = 60 * time.Second

// HTTPCompiler sends the document to the external markup-to-binary
// collaborator and decodes the base64 PDF it returns.
type HTTPCompiler struct {
	endpoint string
	client   *http.Client
}

// NewHTTPCompiler creates a compiler posting to the given endpoint.
func NewHTTPCompiler(endpoint string) *HTTPCompiler {
	return &HTTPCompiler{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

type compileRequest struct {
	Document string `json:"document"`
}

type compileResponse struct {
	PDFDocument string `json:"pdf_document"`
	Error       string `json:"error,omitempty"`
}

// Compile implements Compiler.
func (c *HTTPCompiler) Compile(ctx context.Context, document string) ([]byte, error) {
	body, err := json.Marshal(compileRequest{Document: document})
	if err != nil {
		return nil, &CompilationError{Message: "failed to marshal compile request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &CompilationError{Message: "failed to create compile request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &CompilationError{Message: "compile request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CompilationError{Message: "failed to read compile response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CompilationError{
			Message:   fmt.Sprintf("compile service returned status %d", resp.StatusCode),
			LogOutput: string(respBody),
		}
	}

	var decoded compileResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &CompilationError{Message: "failed to parse compile response", Cause: err}
	}
	if decoded.Error != "" {
		return nil, &CompilationError{Message: decoded.Error}
	}

	return DecodePDF(decoded.PDFDocument)
}

// DecodePDF decodes a base64 PDF payload. Malformed input yields a
// DecodeError, never a panic; the caller keeps its previous preview.
func DecodePDF(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, &DecodeError{Message: "empty PDF payload"}
	}
	pdf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Message: "malformed base64 PDF payload", Cause: err}
	}
	return pdf, nil
}
