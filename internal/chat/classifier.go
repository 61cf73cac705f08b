package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sunrisemc/booking-api/pkg/logger"
)

// candidate labels sent to the zero-shot model, mapped back to intents.
var classifierLabels = map[string]Intent{
	"greeting":             IntentGreeting,
	"help":                 IntentHelp,
	"booking appointment":  IntentBooking,
	"managing appointment": IntentManaging,
	"asking location":      IntentLocation,
	"contact information":  IntentContact,
}

// ZeroShotClassifier calls a hosted zero-shot classification model
// (facebook/bart-large-mnli behind the HuggingFace inference API).
type ZeroShotClassifier struct {
	url    string
	token  string
	client *http.Client
	logger *logger.Logger
}

func NewZeroShotClassifier(url, token string, timeout time.Duration, logger *logger.Logger) *ZeroShotClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ZeroShotClassifier{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type classifyRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		CandidateLabels []string `json:"candidate_labels"`
	} `json:"parameters"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (c *ZeroShotClassifier) Classify(ctx context.Context, text string) (Intent, float64, error) {
	if c.token == "" {
		return IntentUnknown, 0, fmt.Errorf("classifier token not configured")
	}

	reqBody := classifyRequest{Inputs: text}
	for label := range classifierLabels {
		reqBody.Parameters.CandidateLabels = append(reqBody.Parameters.CandidateLabels, label)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return IntentUnknown, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return IntentUnknown, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return IntentUnknown, 0, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return IntentUnknown, 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return IntentUnknown, 0, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(result.Labels) == 0 || len(result.Scores) == 0 {
		return IntentUnknown, 0, fmt.Errorf("classifier returned no labels")
	}

	intent, ok := classifierLabels[result.Labels[0]]
	if !ok {
		return IntentUnknown, result.Scores[0], nil
	}
	return intent, result.Scores[0], nil
}
