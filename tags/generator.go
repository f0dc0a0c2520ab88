// Package tags turns echo text into exactly three discovery tags, via an
// OpenAI-compatible completion endpoint when credentials exist, and a local
// keyword generator otherwise. Callers always get tags, never an error.
package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	tagCount         = 3
	placeholderKey   = "your_openai_api_key_here"
	completionsModel = "gpt-3.5-turbo"

	systemPrompt = `You are a social media content analyzer. Generate exactly 3 relevant hashtags for voice posts based on the content.

Rules:
- Return only 3 hashtags
- No # symbol in response
- Use lowercase
- Focus on themes, emotions, and topics
- Make them discoverable and relevant
- Common voice post categories: deepthoughts, motivation, confession, philosophy, mindfulness, morning, energy, relationshipadvice, storytelling, wisdom, growth, reflection

Return only the 3 words separated by commas, nothing else.`
)

// keyword categories checked in order; first three matches win
var tagCategories = []struct {
	tag      string
	keywords []string
}{
	{"morning", []string{"morning", "coffee", "sunrise", "wake"}},
	{"motivation", []string{"motivation", "inspire", "success", "goal", "achieve"}},
	{"deepthoughts", []string{"thought", "philosophy", "wonder", "think", "ponder"}},
	{"confession", []string{"confession", "secret", "admit", "truth"}},
	{"energy", []string{"energy", "positive", "vibe", "excited", "happy"}},
	{"relationshipadvice", []string{"relationship", "love", "dating", "partner", "heart"}},
	{"mindfulness", []string{"mindful", "peace", "calm", "meditation", "zen"}},
	{"growth", []string{"growth", "learn", "improve", "better", "change"}},
	{"wisdom", []string{"wisdom", "advice", "experience", "lesson"}},
	{"storytelling", []string{"story", "tale", "remember", "once", "happened"}},
}

var genericTags = []string{"reflection", "thoughts", "voice", "share", "moment"}

// Generator produces tags for echo content.
type Generator struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

// NewGenerator creates a generator. An empty or placeholder key disables the
// remote call and every request uses the local fallback.
func NewGenerator(apiKey, baseURL string, log *zap.SugaredLogger) *Generator {
	return &Generator{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate returns exactly three lowercase tags for the text. Remote failures
// of any kind resolve through the local fallback and are never surfaced.
func (g *Generator) Generate(ctx context.Context, text string) []string {
	if g.apiKey == "" || g.apiKey == placeholderKey {
		g.log.Debug("tag service key not configured, using fallback generation")
		return FallbackTags(text)
	}

	tags, err := g.remote(ctx, text)
	if err != nil {
		g.log.Warnf("tag generation failed, using fallback: %v", err)
		return FallbackTags(text)
	}
	return tags
}

func (g *Generator) remote(ctx context.Context, text string) ([]string, error) {
	payload := chatRequest{
		Model: completionsModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   50,
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tag service status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("tag service returned no choices")
	}

	tags := normalize(strings.Split(parsed.Choices[0].Message.Content, ","))
	if len(tags) < tagCount {
		return nil, fmt.Errorf("tag service returned %d tags", len(tags))
	}
	return tags[:tagCount], nil
}

// FallbackTags builds three unique lowercase tags from keyword matches,
// topped up from the generic pool. Deterministic for any input.
func FallbackTags(text string) []string {
	lower := strings.ToLower(text)
	tags := make([]string, 0, tagCount)

	for _, cat := range tagCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, cat.tag)
				break
			}
		}
		if len(tags) >= tagCount {
			break
		}
	}

	for _, g := range genericTags {
		if len(tags) >= tagCount {
			break
		}
		if !contains(tags, g) {
			tags = append(tags, g)
		}
	}

	return tags[:tagCount]
}

func normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.TrimPrefix(t, "#")
		if t == "" || contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
