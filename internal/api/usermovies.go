package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// ListMutation is the backend's response to a my-list mutation. Payload is
// the raw response body so the gateway can pass it through unchanged;
// MovieExist reports whether the movie was already on the user's list.
type ListMutation struct {
	Status     int
	Payload    []byte
	MovieExist bool
}

// AddUserMovie forwards a my-list mutation to the backend with bearer auth.
// The request body is proxied byte-for-byte.
func (c *Client) AddUserMovie(ctx context.Context, token string, body []byte) (*ListMutation, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/user-movies", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := readAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// movieExist lives in the nested data object; a body that does not
	// decode simply leaves it false.
	var parsed struct {
		Data struct {
			MovieExist bool `json:"movieExist"`
		} `json:"data"`
	}
	_ = json.Unmarshal(payload, &parsed)

	return &ListMutation{
		Status:     resp.StatusCode,
		Payload:    payload,
		MovieExist: parsed.Data.MovieExist,
	}, nil
}
