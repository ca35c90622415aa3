package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Posting</h1></body></html>"))
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Posting</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestPage_InvalidURL(t *testing.T) {
	_, err := Page(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractPostingText_ContentSelector(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation to drop</nav>
			<div class="job-description">
				<h1>Sales Lead</h1>
				<p>Own the DACH region.</p>
			</div>
			<footer>Footer to drop</footer>
		</body>
	</html>`

	text, err := ExtractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, text, "Sales Lead")
	assert.Contains(t, text, "Own the DACH region.")
	assert.NotContains(t, text, "Navigation to drop")
	assert.NotContains(t, text, "Footer to drop")
}

func TestExtractPostingText_BodyFallback(t *testing.T) {
	html := `<html><body><p>Plain page without landmarks.</p></body></html>`

	text, err := ExtractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Plain page without landmarks.", text)
}

func TestExtractPostingText_NoiseRemoved(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="job-description">
				<p>The actual posting.</p>
				<form><input name="resume"/></form>
				<div class="eeo-statement">Equal opportunity text</div>
			</div>
		</body>
	</html>`

	text, err := ExtractPostingText(html, PlatformGreenhouse)
	require.NoError(t, err)
	assert.Contains(t, text, "The actual posting.")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/7063751", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://example.com/careers/123", PlatformUnknown},
		{"://broken", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestJobPostingText_HTTPOnly(t *testing.T) {
	// Long enough that the browser fallback never triggers.
	body := `<html><body><main><p>` + longPostingText() + `</p></main></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	text, err := JobPostingText(context.Background(), server.URL, &Options{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		DisableBrowser: true,
	})
	require.NoError(t, err)
	assert.Contains(t, text, "responsibilities")
}

func TestJobPostingText_ThinPageWithoutBrowser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	text, err := JobPostingText(context.Background(), server.URL, &Options{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		DisableBrowser: true,
	})
	require.NoError(t, err)
	assert.Empty(t, text, "thin HTTP text comes back as-is when the browser is disabled")
}

func longPostingText() string {
	text := "We are hiring a sales lead with broad responsibilities across the region. "
	for len(text) < minContentLength {
		text += text
	}
	return text
}
