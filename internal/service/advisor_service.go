package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrAdvisorUnavailable = errors.New("recommendation service unavailable")

// CropQuery is the payload forwarded to the crop model service
type CropQuery struct {
	SoilType string `json:"soil_type" binding:"required"`
	Season   string `json:"season" binding:"required"`
	Place    string `json:"place" binding:"required"`
}

// CropRecommender proxies to the external crop-recommendation model,
// a separate service exposing POST /predict.
type CropRecommender struct {
	baseURL string
	client  *http.Client
}

// NewCropRecommender creates a CropRecommender against the given base URL
func NewCropRecommender(baseURL string, client *http.Client) *CropRecommender {
	return &CropRecommender{baseURL: baseURL, client: client}
}

// Recommend forwards the query and returns the recommended crop. Upstream
// validation errors ({"error": ...} responses) are surfaced verbatim.
func (r *CropRecommender) Recommend(ctx context.Context, query CropQuery) (string, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("failed to encode crop query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build crop model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	var result struct {
		RecommendedCrop string `json:"recommended_crop"`
		Error           string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode crop model response: %w", err)
	}
	if result.Error != "" {
		return "", errors.New(result.Error)
	}
	if result.RecommendedCrop == "" {
		return "", errors.New("crop model did not return a recommendation")
	}
	return result.RecommendedCrop, nil
}

// AdviceQuery is the payload of POST /api/recommend-crops
type AdviceQuery struct {
	SoilType string `json:"soilType" binding:"required"`
	Season   string `json:"season" binding:"required"`
	Region   string `json:"region" binding:"required"`
}

// AdviceClient calls a chat-completions style generative API for free-form
// crop advice.
type AdviceClient struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewAdviceClient creates an AdviceClient
func NewAdviceClient(apiURL, apiKey, model string, client *http.Client) *AdviceClient {
	return &AdviceClient{apiURL: apiURL, apiKey: apiKey, model: model, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Advise asks the generative API for three crop suggestions with reasons
func (a *AdviceClient) Advise(ctx context.Context, query AdviceQuery) (string, error) {
	prompt := fmt.Sprintf(
		"Recommend the best 3 crops for a farmer based on:\n- Soil type: %s\n- Season: %s\n- Region: %s\nGive short explanations for each crop.",
		query.SoilType, query.Season, query.Region,
	)

	payload := struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		MaxTokens   int           `json:"max_tokens"`
		Temperature float64       `json:"temperature"`
	}{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are AgriBot, an expert in agriculture who recommends the best crops based on soil type, climate, and season."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice API returned status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode advice response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("advice API returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
