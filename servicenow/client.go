// Package servicenow fetches and normalizes pending-approval records from a
// ServiceNow approvals endpoint.
package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ApprovalSet is the canonical result of one approvals fetch: the flat record
// list plus per-category buckets keyed by humanized category name. The
// canonical 200 body is {"result": {"approvals": {<category>: [record...]}}};
// a bare list or single object under "result" is tolerated and wrapped.
type ApprovalSet struct {
	Records []any
	ByType  map[string][]any
}

// Client calls the approvals endpoint. It performs exactly one GET per fetch:
// no retry, no pagination, no timeout beyond the HTTP client's default.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{apiURL: apiURL, httpClient: httpClient}
}

// FetchApprovals retrieves the caller's pending approvals. An empty access
// token short-circuits to an empty set without a network call. Downstream
// failures degrade into a single placeholder record carrying the HTTP status
// and body, so the caller can always render something.
func (c *Client) FetchApprovals(ctx context.Context, accessToken string) ApprovalSet {
	if accessToken == "" {
		return ApprovalSet{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return errorSet(0, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", c.apiURL).Msg("approvals fetch failed")
		return errorSet(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorSet(resp.StatusCode, err.Error())
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return errorSet(resp.StatusCode, string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return errorSet(resp.StatusCode, string(body))
	}

	result, ok := parsed["result"]
	if !ok {
		log.Warn().Str("url", c.apiURL).Msg("approvals response has no result field")
		return ApprovalSet{}
	}
	return extractResult(result)
}

func extractResult(result any) ApprovalSet {
	switch r := result.(type) {
	case map[string]any:
		if buckets, ok := r["approvals"].(map[string]any); ok {
			return extractBuckets(buckets)
		}
		return singleton(r)
	case []any:
		return ApprovalSet{Records: r, ByType: map[string][]any{"Approvals": r}}
	default:
		return singleton(r)
	}
}

// extractBuckets flattens a category-keyed mapping into one record list,
// keeping the per-category view for grouped rendering. Categories are walked
// in sorted order so the flat list is stable.
func extractBuckets(buckets map[string]any) ApprovalSet {
	categories := make([]string, 0, len(buckets))
	for category := range buckets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	set := ApprovalSet{ByType: make(map[string][]any, len(buckets))}
	for _, category := range categories {
		records, ok := buckets[category].([]any)
		if !ok {
			if buckets[category] == nil {
				continue
			}
			records = []any{buckets[category]}
		}
		set.Records = append(set.Records, records...)
		set.ByType[humanizeCategory(category)] = records
	}
	return set
}

func singleton(record any) ApprovalSet {
	records := []any{record}
	return ApprovalSet{Records: records, ByType: map[string][]any{"Approvals": records}}
}

func errorSet(status int, body string) ApprovalSet {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	record := map[string]any{
		"approval_state":    "error",
		"short_description": fmt.Sprintf("approvals request failed (HTTP %d): %s", status, strings.TrimSpace(body)),
	}
	records := []any{record}
	return ApprovalSet{Records: records, ByType: map[string][]any{"Errors": records}}
}

// humanizeCategory turns a table-style category key into a display title,
// e.g. "change_request" becomes "Change Requests".
func humanizeCategory(category string) string {
	words := strings.Split(category, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	title := strings.Join(words, " ")
	if title == "" {
		return title
	}
	if !strings.HasSuffix(title, "s") {
		title += "s"
	}
	return title
}
