// Package fetch retrieves job postings and reduces them to plain text for
// the AI collaborators.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the HTTP request timeout for posting fetches.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the fetcher to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeStudio/1.0)"

// Error represents a failure fetching or parsing a posting.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures posting fetches.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // force headless-browser rendering
}

// DefaultOptions returns sensible fetch defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
}

// Posting fetches a job posting URL and returns its main text. When the
// plain HTTP fetch yields too little text the page is assumed to be a
// JavaScript-rendered SPA and is re-fetched through a headless browser.
func Posting(ctx context.Context, urlStr string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	var html string
	if !opts.UseBrowser {
		html, err = fetchHTML(ctx, urlStr, opts)
		if err != nil {
			return "", err
		}
	}

	text := ""
	if html != "" {
		text, err = ExtractPostingText(html)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
		}
	}

	if opts.UseBrowser || ShouldUseBrowser(text) {
		rendered, berr := WithBrowser(ctx, urlStr, opts.Timeout)
		if berr != nil {
			if text != "" {
				// Keep whatever the plain fetch produced.
				return text, nil
			}
			return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: berr}
		}
		text, err = ExtractPostingText(rendered)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "failed to parse rendered HTML", Cause: err}
		}
	}

	return text, nil
}

func fetchHTML(ctx context.Context, urlStr string, opts *Options) (string, error) {
	client := &http.Client{Timeout: opts.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

// postingSelectors are tried in order; the first match wins.
var postingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractPostingText parses HTML and returns the job posting's main text,
// with navigation chrome removed and whitespace collapsed.
func ExtractPostingText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	return strings.TrimSpace(multiNewline.ReplaceAllString(text, "\n\n"))
}
