package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"mealguard/utils"
)

// ErrMalformedAdvisory marks a provider reply that could not be parsed into
// the required shape. Callers must not fabricate defaults from it.
var ErrMalformedAdvisory = errors.New("malformed advisory response")

// MealVerdict is the structured analysis contract the provider is held to:
// fixed field names, fixed types, all fields required.
type MealVerdict struct {
	FoodName string `json:"foodName"`
	IsSafe   bool   `json:"isSafe"`
	Analysis string `json:"analysis"`
	Tips     string `json:"tips"`
}

// MealSummary is the slice of a log entry the recommendation prompt needs.
type MealSummary struct {
	FoodName string
	IsSafe   bool
}

// Advisor is the narrow interface the interaction layer depends on, so the
// rest of the system never touches the provider wire format.
type Advisor interface {
	AnalyzeMeal(ctx context.Context, image *utils.ImagePayload, age int, condition string) (*MealVerdict, error)
	DailyRecommendation(ctx context.Context, meals []MealSummary, age int, condition string) (string, error)
}

// AdvisorService calls the Gemini generateContent API. Both request types are
// synchronous, bounded by the client timeout, and never retried.
type AdvisorService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewAdvisorService() *AdvisorService {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &AdvisorService{
		client:  &http.Client{Timeout: 45 * time.Second},
		baseURL: "https://generativelanguage.googleapis.com",
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
	}
}

// Gemini wire types. Schema hints in generationConfig constrain the model to
// the exact JSON shape; the prompt repeats the contract in words.
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *geminiGeneration `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGeneration struct {
	ResponseMIMEType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
	Temperature      float64       `json:"temperature"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

var verdictSchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]*geminiSchema{
		"foodName": {Type: "STRING"},
		"isSafe":   {Type: "BOOLEAN"},
		"analysis": {Type: "STRING"},
		"tips":     {Type: "STRING"},
	},
	Required: []string{"foodName", "isSafe", "analysis", "tips"},
}

var recommendationSchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]*geminiSchema{
		"recommendation": {Type: "STRING"},
	},
	Required: []string{"recommendation"},
}

// AnalyzeMeal sends the meal photo for a safety verdict tailored to the
// user's age and condition.
func (a *AdvisorService) AnalyzeMeal(ctx context.Context, image *utils.ImagePayload, age int, condition string) (*MealVerdict, error) {
	prompt := fmt.Sprintf(`You are a geriatric nutrition expert. Look at this photo of a meal eaten by a %d-year-old with %s.

Judge whether this meal is safe for them to eat, considering their age and condition.

Respond with JSON in exactly this shape:
{"foodName": "short name of the dish", "isSafe": true or false, "analysis": "2-3 sentences explaining the verdict", "tips": "one practical eating tip"}

Write the analysis and tips warmly and simply, as if speaking to an elderly person. No medical jargon.`, age, condition)

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{
					MimeType: image.ContentType,
					Data:     image.Base64Data,
				}},
			},
		}},
		GenerationConfig: &geminiGeneration{
			ResponseMIMEType: "application/json",
			ResponseSchema:   verdictSchema,
			Temperature:      0.4,
		},
	}

	text, err := a.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseVerdict(text)
}

// DailyRecommendation asks for one warm sentence of advice derived from the
// recent meal pattern. Best-effort: callers drop the text on failure.
func (a *AdvisorService) DailyRecommendation(ctx context.Context, meals []MealSummary, age int, condition string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Recent meals, newest first:\n")
	for _, m := range meals {
		verdict := "safe"
		if !m.IsSafe {
			verdict = "not safe"
		}
		fmt.Fprintf(&sb, "- %s (judged %s)\n", m.FoodName, verdict)
	}

	prompt := fmt.Sprintf(`You are a geriatric nutrition expert advising a %d-year-old with %s.

%s
Based on this pattern, give one warm, simple sentence of dietary advice for today.

Respond with JSON in exactly this shape:
{"recommendation": "one sentence"}`, age, condition, sb.String())

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &geminiGeneration{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recommendationSchema,
			Temperature:      0.6,
		},
	}

	text, err := a.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return parseRecommendation(text)
}

// generate posts one request and returns the first candidate's text.
func (a *AdvisorService) generate(ctx context.Context, payload geminiRequest) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var provErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &provErr) == nil && provErr.Error.Message != "" {
			return "", fmt.Errorf("provider error (%d): %s", resp.StatusCode, provErr.Error.Message)
		}
		return "", fmt.Errorf("provider error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode provider response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedAdvisory)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSON trims any chatter around the JSON object a model may add even
// under a schema hint.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in reply", ErrMalformedAdvisory)
	}
	return text[start : end+1], nil
}

// parseVerdict enforces the four-field contract. A missing field fails the
// whole call; defaults are never fabricated.
func parseVerdict(text string) (*MealVerdict, error) {
	jsonStr, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var raw struct {
		FoodName *string `json:"foodName"`
		IsSafe   *bool   `json:"isSafe"`
		Analysis *string `json:"analysis"`
		Tips     *string `json:"tips"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAdvisory, err)
	}
	if raw.FoodName == nil || raw.IsSafe == nil || raw.Analysis == nil || raw.Tips == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrMalformedAdvisory)
	}

	return &MealVerdict{
		FoodName: *raw.FoodName,
		IsSafe:   *raw.IsSafe,
		Analysis: *raw.Analysis,
		Tips:     *raw.Tips,
	}, nil
}

func parseRecommendation(text string) (string, error) {
	jsonStr, err := extractJSON(text)
	if err != nil {
		return "", err
	}

	var raw struct {
		Recommendation *string `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedAdvisory, err)
	}
	if raw.Recommendation == nil || strings.TrimSpace(*raw.Recommendation) == "" {
		return "", fmt.Errorf("%w: missing recommendation", ErrMalformedAdvisory)
	}
	return *raw.Recommendation, nil
}
