package chatwoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"support-orchestrator/pkg/textnorm"
)

// ErrTeamNotFound is returned when a team name cannot be resolved to an id,
// either from the cache or from the live team listing.
var ErrTeamNotFound = errors.New("chatwoot: team not found")

// ListTeams fetches the teams of an account.
func (c *Client) ListTeams(ctx context.Context, accountID string) ([]Team, error) {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/teams", c.baseURL, accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("chatwoot: failed to create teams request: %w", err)
	}
	req.Header.Set(HeaderAPIAccessToken, c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chatwoot: failed to list teams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chatwoot: listTeams API error %d: %s", resp.StatusCode, truncate(raw))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chatwoot: failed to read teams response: %w", err)
	}
	return parseTeamList(raw)
}

// ResolveTeamID resolves a team name or numeric id to a team id.
// Numeric input is returned unchanged without any network call. Names are
// looked up in the cache first, then against the live listing, accepting an
// exact folded match or, failing that, the first bidirectional substring
// match. The cache is populated under both casefolded and folded keys and
// lives for the process lifetime.
func (c *Client) ResolveTeamID(ctx context.Context, accountID, teamNameOrID string) (int, error) {
	value := strings.TrimSpace(teamNameOrID)
	if value == "" {
		return 0, ErrTeamNotFound
	}

	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	c.teamMu.RLock()
	cached, ok := c.teamCache[strings.ToLower(value)]
	c.teamMu.RUnlock()
	if ok {
		return cached, nil
	}

	teams, err := c.ListTeams(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("chatwoot: could not resolve team %q: %w", value, err)
	}
	c.cacheTeams(teams)

	queryFolded := textnorm.Fold(value)
	bestMatch := 0
	for _, team := range teams {
		name := strings.TrimSpace(team.Name)
		if name == "" || team.ID == 0 {
			continue
		}
		nameFolded := textnorm.Fold(name)
		if nameFolded == queryFolded {
			return team.ID, nil
		}
		// Partial match covers phrases like "equipe de financeiro".
		if bestMatch == 0 && (strings.Contains(nameFolded, queryFolded) || strings.Contains(queryFolded, nameFolded)) {
			bestMatch = team.ID
		}
	}
	if bestMatch != 0 {
		return bestMatch, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrTeamNotFound, value)
}

// WarmTeams preloads the team cache and returns the live team list.
// Called once at startup so early resolutions do not hit the API.
func (c *Client) WarmTeams(ctx context.Context, accountID string) ([]Team, error) {
	teams, err := c.ListTeams(ctx, accountID)
	if err != nil {
		return nil, err
	}
	c.cacheTeams(teams)
	return teams, nil
}

// TeamCacheSnapshot returns a copy of the resolver cache for diagnostics.
func (c *Client) TeamCacheSnapshot() map[string]int {
	c.teamMu.RLock()
	defer c.teamMu.RUnlock()

	snapshot := make(map[string]int, len(c.teamCache))
	for k, v := range c.teamCache {
		snapshot[k] = v
	}
	return snapshot
}

func (c *Client) cacheTeams(teams []Team) {
	c.teamMu.Lock()
	defer c.teamMu.Unlock()
	for _, team := range teams {
		name := strings.TrimSpace(team.Name)
		if name == "" || team.ID == 0 {
			continue
		}
		c.teamCache[strings.ToLower(name)] = team.ID
		c.teamCache[textnorm.Fold(name)] = team.ID
	}
}

func parseTeamList(raw []byte) ([]Team, error) {
	var wrapped teamListResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if len(wrapped.Payload) > 0 {
			return wrapped.Payload, nil
		}
		return wrapped.Data, nil
	}

	var plain []Team
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	return nil, fmt.Errorf("chatwoot: unrecognized teams response: %s", truncate(raw))
}
