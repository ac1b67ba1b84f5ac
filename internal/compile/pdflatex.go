package compile

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// LocalTimeout is the maximum time to wait for a local pdflatex run.
const LocalTimeout = 30 * time.Second

// PDFLaTeX compiles documents with a local pdflatex installation, used by the
// CLI when no compile service endpoint is configured.
type PDFLaTeX struct{}

// NewPDFLaTeX returns a local pdflatex compiler.
func NewPDFLaTeX() *PDFLaTeX {
	return &PDFLaTeX{}
}

// Compile implements Compiler by writing the document to a temporary
// directory and running pdflatex over it.
func (p *PDFLaTeX) Compile(ctx context.Context, document string) ([]byte, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "resume-studio-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(document), 0o644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX document", Cause: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, LocalTimeout)
	defer cancel()

	// -interaction=nonstopmode prevents interactive prompts on errors.
	cmd := exec.CommandContext(runCtx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()

	pdfPath := filepath.Join(workDir, "resume.pdf")
	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		return nil, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can exit non-zero and still emit a usable PDF; treat an
	// existing PDF as success.
	return pdf, nil
}
