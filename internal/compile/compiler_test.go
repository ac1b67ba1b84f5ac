package compile

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCompiler_ReturnsDecodedPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req compileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Document, "\\documentclass")
		json.NewEncoder(w).Encode(compileResponse{
			PDFDocument: base64.StdEncoding.EncodeToString(pdf),
		})
	}))
	defer srv.Close()

	c := NewHTTPCompiler(srv.URL)
	got, err := c.Compile(context.Background(), "\\documentclass{article}")
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestHTTPCompiler_ServiceErrorBecomesCompilationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(compileResponse{Error: "Undefined control sequence"})
	}))
	defer srv.Close()

	c := NewHTTPCompiler(srv.URL)
	_, err := c.Compile(context.Background(), "doc")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Message, "Undefined control sequence")
}

func TestHTTPCompiler_NonOKStatusCarriesLogOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("pdflatex crashed"))
	}))
	defer srv.Close()

	c := NewHTTPCompiler(srv.URL)
	_, err := c.Compile(context.Background(), "doc")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "pdflatex crashed", compErr.LogOutput)
}

func TestHTTPCompiler_UnreachableEndpoint(t *testing.T) {
	c := NewHTTPCompiler("http://127.0.0.1:1/compile")
	_, err := c.Compile(context.Background(), "doc")
	var compErr *CompilationError
	assert.ErrorAs(t, err, &compErr)
}

func TestDecodePDF_EmptyPayload(t *testing.T) {
	_, err := DecodePDF("")
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestDecodePDF_MalformedBase64(t *testing.T) {
	_, err := DecodePDF("!!!not-base64!!!")
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Error(t, decErr.Unwrap())
}

func TestDecodePDF_ValidPayload(t *testing.T) {
	got, err := DecodePDF(base64.StdEncoding.EncodeToString([]byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got)
}
