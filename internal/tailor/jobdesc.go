package tailor

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// jobFetchTimeout bounds fetching a job description by URL.
var jobFetchTimeout = 30 * time.Second

// jobPostingSelectors are tried in order to find the posting body of an HTML
// page; the whole body is used when none match.
var jobPostingSelectors = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
}

const noiseSelector = "nav, footer, header, script, style, noscript, form, .cookie-banner, .sidebar"

// blockEnd marks the end of a block element while the page text is collected.
const blockEnd = "\u2029"

// LoadJobDescription reads a job description from an http(s) URL or a file
// path.
func LoadJobDescription(ctx context.Context, input string) (string, error) {
	parsed, err := url.Parse(input)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		text, err := fetchJobDescription(ctx, input)
		if err != nil {
			return "", errors.Wrapf(err, "failed to fetch job description from URL: %s", input)
		}
		return text, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read job description file: %s", input)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.Errorf("job description file is empty: %s", input)
	}
	return text, nil
}

func fetchJobDescription(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, jobFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create HTTP request")
	}
	req.Header.Set("User-Agent", "resume-normalizer/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "HTTP request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("HTTP request returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}

	text := strings.TrimSpace(string(data))
	if isHTML(resp.Header.Get("Content-Type"), text) {
		text, err = htmlText(text)
		if err != nil {
			return "", err
		}
	}
	if text == "" {
		return "", errors.New("response body is empty")
	}
	return text, nil
}

func isHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	lower := strings.ToLower(body)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}

// htmlText returns the visible text of a job posting page, one line per
// block element with whitespace collapsed.
func htmlText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse HTML")
	}
	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range jobPostingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	content.Find("p, li, br, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(blockEnd)
	})

	var lines []string
	for _, line := range strings.Split(content.Text(), blockEnd) {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
