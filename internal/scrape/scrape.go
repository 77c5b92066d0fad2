package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"knowledgelink/internal/pkg/pdfextract"
)

const (
	// Some sites reject clients that do not look like a browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

	fetchTimeout = 15 * time.Second

	// NoTitlePlaceholder stands in when a page has no usable title.
	NoTitlePlaceholder = "No Title Found"
)

// Extractor fetches a URL and reduces it to a title and a plain-text body.
// Construct once and share; the embedded http.Client is goroutine-safe.
type Extractor struct {
	httpClient *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads target and extracts (title, text). On a transport error or
// a non-2xx status it returns an error and no partial output. HTML bodies are
// flattened to whitespace-collapsed lines; PDF bodies go through the PDF text
// extractor with the file name standing in for the missing title.
func (e *Extractor) Fetch(ctx context.Context, target string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", "", fmt.Errorf("build fetch request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("fetch %s returned status %d", target, resp.StatusCode)
	}

	if isPDF(resp.Header.Get("Content-Type")) {
		text, err := pdfextract.ExtractText(resp.Body)
		if err != nil {
			return "", "", fmt.Errorf("extract pdf text from %s failed: %w", target, err)
		}
		text = collapseText(text)
		if text == "" {
			return "", "", fmt.Errorf("no extractable text in pdf %s", target)
		}
		return titleFromURL(target), text, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("parse html from %s failed: %w", target, err)
	}

	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = NoTitlePlaceholder
	}

	text := collapseText(doc.Text())
	return title, text, nil
}

func isPDF(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return mediaType == "application/pdf"
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// collapseText trims every line, splits runs of doubled spaces into their own
// segments, drops the blanks and joins the rest with single newlines.
// CR and CRLF endings count as line breaks too.
func collapseText(raw string) string {
	var segments []string
	for _, line := range strings.Split(lineEndings.Replace(raw), "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				segments = append(segments, phrase)
			}
		}
	}
	return strings.Join(segments, "\n")
}

func titleFromURL(target string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return NoTitlePlaceholder
	}
	base := path.Base(parsed.Path)
	if base == "" || base == "." || base == "/" {
		return NoTitlePlaceholder
	}
	return base
}
