package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// User holds the identity fields the backend returns for an account.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SignInResult is the backend's answer to a successful credential check.
type SignInResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignIn validates credentials against the backend using HTTP basic auth
// (the "basic" strategy). Any failure, including a 401 from the backend,
// surfaces as an error; the caller decides how to respond.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/sign-in", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(email, password)

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result SignInResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	if result.Token == "" {
		return nil, fmt.Errorf("sign-in response missing token")
	}

	return &result, nil
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signUpResponse struct {
	ID string `json:"id"`
}

// SignUp creates a user on the backend and returns the new account ID.
func (c *Client) SignUp(ctx context.Context, email, name, password string) (string, error) {
	payload, err := json.Marshal(signUpRequest{Email: email, Name: name, Password: password})
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/sign-up", payload)
	if err != nil {
		return "", err
	}

	data, err := c.do(req)
	if err != nil {
		return "", err
	}

	var body signUpResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("failed to decode sign-up response: %w", err)
	}

	return body.ID, nil
}
