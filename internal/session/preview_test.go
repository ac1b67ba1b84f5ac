package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/compile"
	"github.com/jonathan/resume-studio/internal/derivation"
)

// fakeCompiler echoes the document bytes as the "PDF" and can be made to
// block or fail on demand.
type fakeCompiler struct {
	mu      sync.Mutex
	calls   int
	fail    error
	started chan string
	release chan struct{}
}

func (f *fakeCompiler) Compile(_ context.Context, document string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	fail := f.fail
	f.mu.Unlock()

	if f.started != nil {
		f.started <- document
	}
	if f.release != nil {
		<-f.release
	}
	if fail != nil {
		return nil, fail
	}
	return []byte(document), nil
}

func (f *fakeCompiler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestFlush_CompilesSynchronously(t *testing.T) {
	fc := &fakeCompiler{}
	p := NewPreviewerWithDebounce(fc, time.Hour, nil)

	p.Submit("doc-1")
	p.Flush(context.Background())

	pdf, errMsg := p.Preview()
	assert.Equal(t, []byte("doc-1"), pdf)
	assert.Empty(t, errMsg)
}

func TestSubmit_DebounceCompilesOnlyLatest(t *testing.T) {
	fc := &fakeCompiler{}
	p := NewPreviewerWithDebounce(fc, 30*time.Millisecond, nil)

	p.Submit("doc-1")
	p.Submit("doc-2")
	p.Submit("doc-3")

	require.Eventually(t, func() bool {
		pdf, _ := p.Preview()
		return string(pdf) == "doc-3"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, fc.callCount())
}

func TestSubmit_PlaceholderNeverReachesCompiler(t *testing.T) {
	fc := &fakeCompiler{}
	p := NewPreviewerWithDebounce(fc, time.Millisecond, nil)

	p.Submit(derivation.PlaceholderNoDocument)
	p.Submit(derivation.PlaceholderNoSections)
	time.Sleep(50 * time.Millisecond)
	p.Wait()

	assert.Equal(t, 0, fc.callCount())
	pdf, _ := p.Preview()
	assert.Empty(t, pdf)
}

func TestCompile_StaleResponseDiscarded(t *testing.T) {
	fc := &fakeCompiler{
		started: make(chan string, 2),
		release: make(chan struct{}, 2),
	}
	p := NewPreviewerWithDebounce(fc, time.Millisecond, nil)

	p.Submit("doc-old")
	// Wait for the old compile to be in flight.
	require.Equal(t, "doc-old", <-fc.started)

	// A newer document arrives while doc-old is still compiling.
	p.Submit("doc-new")
	fc.release <- struct{}{} // let doc-old finish; its response is stale

	require.Equal(t, "doc-new", <-fc.started)
	fc.release <- struct{}{}
	p.Wait()

	pdf, errMsg := p.Preview()
	assert.Equal(t, []byte("doc-new"), pdf)
	assert.Empty(t, errMsg)
}

func TestCompile_FailureKeepsPreviousPreview(t *testing.T) {
	fc := &fakeCompiler{}
	p := NewPreviewerWithDebounce(fc, time.Hour, nil)

	p.Submit("doc-good")
	p.Flush(context.Background())

	fc.mu.Lock()
	fc.fail = &compile.CompilationError{Message: "missing brace"}
	fc.mu.Unlock()

	p.Submit("doc-bad")
	p.Flush(context.Background())

	pdf, errMsg := p.Preview()
	assert.Equal(t, []byte("doc-good"), pdf)
	assert.Contains(t, errMsg, "missing brace")
}

func TestCompile_SuccessClearsErrorMessage(t *testing.T) {
	fc := &fakeCompiler{fail: &compile.CompilationError{Message: "boom"}}
	p := NewPreviewerWithDebounce(fc, time.Hour, nil)

	p.Submit("doc-1")
	p.Flush(context.Background())
	_, errMsg := p.Preview()
	require.NotEmpty(t, errMsg)

	fc.mu.Lock()
	fc.fail = nil
	fc.mu.Unlock()

	p.Submit("doc-2")
	p.Flush(context.Background())
	pdf, errMsg := p.Preview()
	assert.Equal(t, []byte("doc-2"), pdf)
	assert.Empty(t, errMsg)
}
