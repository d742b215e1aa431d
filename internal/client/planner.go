package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Planner calls the optional itinerary-generation collaborator, which
// answers with free text rather than JSON.
type Planner struct {
	rest
}

func NewPlanner(baseURL string, doer HTTPDoer) *Planner {
	return &Planner{rest: newREST(baseURL, doer)}
}

func (p *Planner) Generate(ctx context.Context, destination string, days, budget, travelers int) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"destination": destination,
		"days":        days,
		"budget":      budget,
		"travelers":   travelers,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/itinerary/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", statusError(res)
	}
	text, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return string(text), nil
}
