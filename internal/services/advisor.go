package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pathfinder-backend/internal/models"
	"pathfinder-backend/internal/upstream"
)

// recommendationTimeout bounds the structured-output call; the chat
// path stays on the transport default.
const recommendationTimeout = 15 * time.Second

const recommendationSystemPrompt = `You are an expert career and hobby advisor.

CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown, no backticks.

The object must have exactly two properties:
- "careers": an array of 2 to 4 career entries
- "hobbies": an array of 2 to 3 hobby entries

JSON schema per career entry:
{"career": "string", "studies": ["string", "string", "string"], "icon": "string"}
"studies" must contain exactly 3 recommended fields of study.

JSON schema per hobby entry:
{"hobby": "string", "description": "string", "icon": "string"}

"icon" must be a single lowercase icon identifier such as "code", "palette" or "microscope".

Base every suggestion on the interests the user describes.`

const chatSystemPrompt = `You are Path, a friendly and encouraging career-guidance mentor.
Only discuss careers, education paths, skills and hobbies. If the user drifts to other topics, gently steer the conversation back.
Keep replies short: two to three sentences of plain text, no markdown.`

// generator is the upstream boundary; *upstream.Client satisfies it.
type generator interface {
	Generate(ctx context.Context, req *upstream.Request, timeout time.Duration) (string, error)
}

// AdvisorService shapes prompts for the generative upstream and
// enforces that its replies honor the requested schema.
type AdvisorService struct {
	upstream generator
}

func NewAdvisorService(upstream generator) *AdvisorService {
	return &AdvisorService{upstream: upstream}
}

// ValidationError means the caller's input failed a shape or
// non-emptiness constraint. No upstream call is attempted.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// Recommend asks the model for structured career and hobby suggestions
// matching the user's interests.
func (s *AdvisorService) Recommend(ctx context.Context, interests string) (*models.RecommendationResult, error) {
	interests = strings.TrimSpace(interests)
	if interests == "" {
		return nil, &ValidationError{Message: "interests must not be empty"}
	}

	req := &upstream.Request{
		Contents: []upstream.Content{
			{Role: "user", Parts: []upstream.Part{{Text: interests}}},
		},
		SystemInstruction: &upstream.Content{
			Parts: []upstream.Part{{Text: recommendationSystemPrompt}},
		},
		GenerationConfig: &upstream.GenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	rawText, err := s.upstream.Generate(ctx, req, recommendationTimeout)
	if err != nil {
		return nil, err
	}

	// The model sometimes wraps its output in fences even when JSON
	// mode was requested; normalize before parsing.
	rawText = stripCodeFence(rawText)

	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(rawText), &result); err != nil {
		log.Printf("Gemini recommendation parse error: %v, raw: %s", err, rawText)
		return nil, &upstream.UpstreamError{Message: "Gemini returned malformed recommendations"}
	}

	if err := validateRecommendation(&result); err != nil {
		log.Printf("Gemini recommendation shape error: %v, raw: %s", err, rawText)
		return nil, &upstream.UpstreamError{Message: "Gemini returned malformed recommendations"}
	}

	return &result, nil
}

// Chat forwards the caller's conversation verbatim under the advisor
// persona and returns the model's reply text.
func (s *AdvisorService) Chat(ctx context.Context, history []models.ChatTurn) (string, error) {
	contents := make([]upstream.Content, len(history))
	for i, turn := range history {
		parts := make([]upstream.Part, len(turn.Parts))
		for j, part := range turn.Parts {
			parts[j] = upstream.Part{Text: part.Text}
		}
		contents[i] = upstream.Content{Role: turn.Role, Parts: parts}
	}

	req := &upstream.Request{
		Contents: contents,
		SystemInstruction: &upstream.Content{
			Parts: []upstream.Part{{Text: chatSystemPrompt}},
		},
	}

	return s.upstream.Generate(ctx, req, 0)
}

// stripCodeFence removes markdown code-fence delimiters the model may
// wrap around JSON output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// validateRecommendation converts "parsed successfully" into "matches
// the expected schema". A nil slice means the property was missing or
// null in the model output.
func validateRecommendation(result *models.RecommendationResult) error {
	if result.Careers == nil {
		return fmt.Errorf("missing careers array")
	}
	if result.Hobbies == nil {
		return fmt.Errorf("missing hobbies array")
	}
	return nil
}
