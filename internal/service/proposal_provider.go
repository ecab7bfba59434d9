package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// proposalBodyLimit caps proposal payloads; anything larger is not a
// plausible weekly schedule.
const proposalBodyLimit = 1 << 20

// HTTPProposalProvider fetches schedule proposals from the external model
// integration. Responses are passed through opaquely; the planning service
// decides whether the payload is usable.
type HTTPProposalProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProposalProvider(baseURL string, timeout time.Duration) *HTTPProposalProvider {
	return &HTTPProposalProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Propose requests a proposal for the team week.
func (p *HTTPProposalProvider) Propose(ctx context.Context, teamID string, year, weekNumber int) ([]byte, error) {
	url := fmt.Sprintf("%s/proposals/%s?year=%d&week=%d", p.baseURL, teamID, year, weekNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build proposal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call proposal integration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proposal integration returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, proposalBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("read proposal body: %w", err)
	}
	return body, nil
}
