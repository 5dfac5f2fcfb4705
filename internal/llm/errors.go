package llm

import "errors"

var (
	// ErrAPIKeyMissing indicates no API key is configured. The client
	// fails fast on this before any network call.
	ErrAPIKeyMissing = errors.New("gemini api key not configured (set AVATARA_GEMINI_API_KEY)")

	// ErrEmptyCompletion indicates the backend answered 2xx but returned
	// no candidate with usable text.
	ErrEmptyCompletion = errors.New("no response text from gemini")

	// ErrUpstream indicates the backend returned a non-2xx status. The
	// wrapped message carries the backend-provided detail when present.
	ErrUpstream = errors.New("gemini request failed")
)
