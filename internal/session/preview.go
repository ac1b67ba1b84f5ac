package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/compile"
	"github.com/jonathan/resume-studio/internal/derivation"
)

// DefaultDebounce is the inactivity window before a compile is sent.
const DefaultDebounce = 1 * time.Second

// Previewer drives the live preview: every submitted document restarts a
// debounce timer, and on expiry the current document is compiled. Responses
// carry a monotonic sequence number so a late response for a superseded
// document is discarded instead of overwriting a newer preview.
type Previewer struct {
	mu       sync.Mutex
	compiler compile.Compiler
	debounce time.Duration
	timer    *time.Timer

	seq     uint64 // sequence of the latest submitted document
	applied uint64 // sequence of the preview currently shown
	pending string

	pdf      []byte
	errMsg   string
	inFlight sync.WaitGroup

	logger *zap.Logger
}

// NewPreviewer creates a previewer with the default debounce window.
func NewPreviewer(c compile.Compiler, logger *zap.Logger) *Previewer {
	return NewPreviewerWithDebounce(c, DefaultDebounce, logger)
}

// NewPreviewerWithDebounce creates a previewer with a custom debounce window.
func NewPreviewerWithDebounce(c compile.Compiler, debounce time.Duration, logger *zap.Logger) *Previewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Previewer{compiler: c, debounce: debounce, logger: logger}
}

// Submit registers a new derived document. Placeholder documents never reach
// the compile collaborator; the previous preview stays visible.
func (p *Previewer) Submit(document string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.pending = document

	if p.timer != nil {
		p.timer.Stop()
	}
	if isPlaceholder(document) {
		return
	}
	seq := p.seq
	p.timer = time.AfterFunc(p.debounce, func() {
		p.compileIfCurrent(seq)
	})
}

// Flush cancels any pending timer and compiles the latest document
// synchronously. Used by "refresh preview" actions and tests.
func (p *Previewer) Flush(ctx context.Context) {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	seq := p.seq
	doc := p.pending
	p.mu.Unlock()

	if doc == "" || isPlaceholder(doc) {
		return
	}
	p.compileDocument(ctx, doc, seq)
}

// compileIfCurrent runs on timer expiry; a newer submission since the timer
// was armed means a fresher timer is coming, so this one gives up.
func (p *Previewer) compileIfCurrent(seq uint64) {
	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		return
	}
	doc := p.pending
	p.mu.Unlock()

	p.inFlight.Add(1)
	go func() {
		defer p.inFlight.Done()
		p.compileDocument(context.Background(), doc, seq)
	}()
}

func (p *Previewer) compileDocument(ctx context.Context, document string, seq uint64) {
	pdf, err := p.compiler.Compile(ctx, document)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq < p.applied || seq < p.seq {
		// A newer document was submitted while this compile was in flight.
		p.logger.Debug("discarding stale preview", zap.Uint64("seq", seq), zap.Uint64("latest", p.seq))
		return
	}
	if err != nil {
		// Keep the previous preview; the failure is shown inline.
		p.errMsg = err.Error()
		p.logger.Warn("preview compile failed", zap.Error(err))
		return
	}
	p.pdf = pdf
	p.applied = seq
	p.errMsg = ""
}

// Preview returns the current PDF bytes and the inline error message, either
// of which may be empty.
func (p *Previewer) Preview() ([]byte, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pdf, p.errMsg
}

// Wait blocks until in-flight compiles finish. Test hook.
func (p *Previewer) Wait() {
	p.inFlight.Wait()
}

func isPlaceholder(document string) bool {
	return strings.HasPrefix(document, "%") &&
		(document == derivation.PlaceholderNoDocument || document == derivation.PlaceholderNoSections)
}
