package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkovalenko/avatara/internal/domain"
)

// Client provides one completion per user turn against the generative
// language backend. Implementations are stateless between calls.
type Client interface {
	// Complete sends the system instruction, the conversation history, and
	// the new user turn, and returns the assistant's reply text. Exactly
	// one attempt is made per call; there is no retry.
	Complete(ctx context.Context, systemInstruction string, history []domain.ConversationTurn, userText string) (string, error)
}

// geminiClient implements Client using the Gemini generateContent HTTP API.
type geminiClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates a Client that talks to the Gemini API.
func NewGeminiClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
	}
}

// The backend contract has no dedicated system-role slot, so the
// instruction is framed as a priming exchange: one synthetic user turn
// carrying the instruction, followed by one synthetic acknowledgement.
const (
	systemFramePrefix = "[System Instructions - Follow these throughout the conversation]\n\n"
	systemFrameSuffix = "\n\n[End of System Instructions]\n\nPlease acknowledge these instructions briefly."
	primingAck        = "Understood. I will follow these instructions throughout our conversation. What would you like to discuss today?"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generation parameters and safety thresholds are constant across calls;
// they are not user-configurable.
var fixedGenerationConfig = geminiGenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

var fixedSafetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

func (c *geminiClient) Complete(ctx context.Context, systemInstruction string, history []domain.ConversationTurn, userText string) (string, error) {
	start := time.Now()

	if !c.cfg.Configured() {
		c.emit(len(history), start, false, "NO_KEY")
		return "", ErrAPIKeyMissing
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := geminiRequest{
		Contents:         buildContents(systemInstruction, history, userText),
		GenerationConfig: fixedGenerationConfig,
		SafetySettings:   fixedSafetySettings,
	}

	text, err := c.doRequest(ctx, body)
	if err != nil {
		c.emit(len(history), start, false, errorCode(ctx, err))
		return "", err
	}

	c.emit(len(history), start, true, "")
	return text, nil
}

// buildContents assembles the outbound contents array: priming pair, then
// the full history in insertion order, then the new user turn last.
func buildContents(systemInstruction string, history []domain.ConversationTurn, userText string) []geminiContent {
	contents := make([]geminiContent, 0, len(history)+3)

	contents = append(contents,
		geminiContent{Role: "user", Parts: []geminiPart{{Text: systemFramePrefix + systemInstruction + systemFrameSuffix}}},
		geminiContent{Role: "model", Parts: []geminiPart{{Text: primingAck}}},
	)

	for _, turn := range history {
		role := "user"
		if turn.Role == domain.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Text}}})
	}

	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: userText}}})
	return contents
}

func (c *geminiClient) doRequest(ctx context.Context, body geminiRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.cfg.Endpoint, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var errResp geminiErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrUpstream, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrUpstream, httpResp.StatusCode)
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (c *geminiClient) emit(turns int, start time.Time, success bool, code string) {
	c.observer.OnCallComplete(CallEvent{
		Model:     c.cfg.Model,
		Turns:     turns,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
		ErrorCode: code,
	})
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return ""
	case ctx.Err() != nil:
		return "TIMEOUT"
	case errors.Is(err, ErrAPIKeyMissing):
		return "NO_KEY"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM"
	case errors.Is(err, ErrEmptyCompletion):
		return "EMPTY"
	default:
		return "TRANSPORT"
	}
}
