package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
)

// StatusError reports a registry response other than 200 OK.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// ProjectURL returns the JSON API URL for a package on the registry at baseURL.
func ProjectURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + "/pypi/" + url.PathEscape(name) + "/json"
}

// Classify maps a lookup error to its Outcome.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return OutcomeHTTPStatus
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return OutcomeNetwork
	}

	return OutcomeUnexpected
}

// degraded turns a failed lookup into placeholder Info.
func degraded(err error) Info {
	outcome := Classify(err)

	var text string
	switch outcome {
	case OutcomeHTTPStatus:
		text = Unavailable
	case OutcomeNetwork:
		text = NetworkFailure
	default:
		text = fmt.Sprintf("Error fetching PyPI information: %v", err)
	}

	return Info{Summary: text, Description: text, Outcome: outcome}
}

// toInfo builds the displayed texts from a decoded registry document.
func (p projectInfo) toInfo() Info {
	summary := p.Summary
	if summary == "" {
		summary = NoSummary
	}

	var parts []string
	if p.Description != "" {
		parts = append(parts, p.Description)
	}

	homepage := p.ProjectURL
	if homepage == "" {
		homepage = p.HomePage
	}
	if homepage != "" {
		parts = append(parts, "\nProject Homepage: "+homepage)
	}

	description := NoDescription
	if len(parts) > 0 {
		description = strings.Join(parts, "\n\n")
	}

	return Info{Summary: summary, Description: description, Outcome: OutcomeOK}
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
