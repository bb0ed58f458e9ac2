// Package routine consumes the external routine/variant source: ordered
// exercises, each with an ordered list of planned sets carrying target
// values. The catalog is read-only from this side.
package routine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Routine is a planned workout definition fetched from the catalog server.
type Routine struct {
	ID        string     `json:"id"`
	VariantID string     `json:"variant_id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is one catalog exercise with its planned sets.
type Exercise struct {
	ExerciseID   string       `json:"exercise_id"`
	Name         string       `json:"name"`
	MuscleGroups []string     `json:"muscle_groups"`
	Notes        string       `json:"notes"`
	RestAfter    *int         `json:"rest_after"`
	Sets         []PlannedSet `json:"sets"`
}

// PlannedSet carries the target values a routine prescribes for one set.
type PlannedSet struct {
	Kind         string   `json:"set_type"`
	TargetWeight *float64 `json:"target_weight"`
	TargetReps   *int     `json:"target_reps"`
	TargetRIR    *int     `json:"target_rir"`
	TargetRPE    *float64 `json:"target_rpe"`
	TargetTUT    *int     `json:"target_tut"`
	TargetRest   *int     `json:"target_rest"`
}

// Client fetches routines from the catalog server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an HTTP client for the routine/catalog endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchRoutine retrieves a routine, optionally a specific variant of it.
func (c *Client) FetchRoutine(ctx context.Context, routineID, variantID string) (*Routine, error) {
	u := fmt.Sprintf("%s/api/v1/routines/%s", c.baseURL, url.PathEscape(routineID))
	if variantID != "" {
		u += "?variant=" + url.QueryEscape(variantID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching routine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("routine request failed (status %d): %s", resp.StatusCode, body)
	}

	var r Routine
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding routine: %w", err)
	}
	return &r, nil
}
