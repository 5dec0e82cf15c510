package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CatalogItem is an opaque movie record from the backend. The gateway only
// inspects _id and contentRating for filtering; the original JSON is carried
// through untouched so the client sees exactly what the backend returned.
type CatalogItem struct {
	ID            string
	ContentRating string

	raw json.RawMessage
}

func (m *CatalogItem) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID            string `json:"_id"`
		ContentRating string `json:"contentRating"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	m.ID = fields.ID
	m.ContentRating = fields.ContentRating
	m.raw = append(m.raw[:0], data...)
	return nil
}

func (m CatalogItem) MarshalJSON() ([]byte, error) {
	if m.raw == nil {
		return json.Marshal(map[string]string{
			"_id":           m.ID,
			"contentRating": m.ContentRating,
		})
	}
	return m.raw, nil
}

type catalogResponse struct {
	Data []CatalogItem `json:"data"`
}

// FetchCatalog retrieves the movie catalog. The bearer token may be empty;
// whether an anonymous fetch is allowed is the backend's decision.
func (c *Client) FetchCatalog(ctx context.Context, token string) ([]CatalogItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/movies", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var body catalogResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return body.Data, nil
}
