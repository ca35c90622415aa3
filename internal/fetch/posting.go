package fetch

import "context"

// JobPostingText fetches a job posting URL and returns its body text. Pages
// that come back nearly empty over plain HTTP are retried in a headless
// browser unless opts disables it; when the browser also fails, the thin
// HTTP text is returned rather than nothing.
func JobPostingText(ctx context.Context, rawURL string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	result, err := Page(ctx, rawURL, opts)
	if err != nil {
		return "", err
	}

	platform := DetectPlatform(rawURL)
	text, err := ExtractPostingText(result.HTML, platform)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract posting text", Cause: err}
	}

	if needsBrowser(text) && !opts.DisableBrowser {
		html, browserErr := renderWithBrowser(ctx, rawURL, opts.Timeout)
		if browserErr == nil {
			if rendered, extractErr := ExtractPostingText(html, platform); extractErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	return text, nil
}
