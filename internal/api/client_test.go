package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchCatalog(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/movies", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"_id":"m1","title":"First","contentRating":"PG","year":2020},
			{"_id":"m2","title":"Second","contentRating":"G"}
		]}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	items, err := client.FetchCatalog(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Len(t, items, 2)
	require.Equal(t, "m1", items[0].ID)
	require.Equal(t, "PG", items[0].ContentRating)
	require.Equal(t, "G", items[1].ContentRating)
}

func TestFetchCatalog_emptyToken(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The backend decides what an anonymous fetch is worth; the header
		// is still sent.
		require.Equal(t, "Bearer ", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	items, err := client.FetchCatalog(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFetchCatalog_upstreamError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	_, err := client.FetchCatalog(context.Background(), "tok")
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, http.StatusForbidden, ue.Status)
}

func TestFetchCatalog_malformedBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": not json`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	_, err := client.FetchCatalog(context.Background(), "tok")
	require.Error(t, err)
}

func TestCatalogItem_rawPassthrough(t *testing.T) {
	raw := `{"_id":"m1","title":"First","contentRating":"PG","source":{"url":"http://example.com/m1.mp4"}}`

	var item CatalogItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	out, err := json.Marshal(item)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(out))
}

func TestSignIn(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/sign-in", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "ana@example.com", user)
		require.Equal(t, "secret", pass)

		_, _ = w.Write([]byte(`{"token":"tok-abc","user":{"id":"u1","email":"ana@example.com","name":"Ana"}}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	result, err := client.SignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-abc", result.Token)
	require.Equal(t, "u1", result.User.ID)
	require.Equal(t, "Ana", result.User.Name)
}

func TestSignIn_rejected(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	_, err := client.SignIn(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
}

func TestSignIn_missingToken(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"u1"}}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	_, err := client.SignIn(context.Background(), "ana@example.com", "secret")
	require.Error(t, err)
}

func TestSignUp(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/sign-up", r.URL.Path)

		var req struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Ana", req.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"u42"}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	id, err := client.SignUp(context.Background(), "ana@example.com", "Ana", "secret")
	require.NoError(t, err)
	require.Equal(t, "u42", id)
}

func TestAddUserMovie(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		movieExist bool
	}{
		{
			name:       "newly added",
			body:       `{"data":{"movieExist":false,"userMovieId":"um1"},"message":"user movie created"}`,
			movieExist: false,
		},
		{
			name:       "already on list",
			body:       `{"data":{"movieExist":true},"message":"movie already exists"}`,
			movieExist: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/user-movies", r.URL.Path)
				require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer backend.Close()

			client := New(Config{BaseURL: backend.URL})

			result, err := client.AddUserMovie(context.Background(), "tok", []byte(`{"movieId":"m1"}`))
			require.NoError(t, err)
			require.Equal(t, http.StatusCreated, result.Status)
			require.Equal(t, tt.movieExist, result.MovieExist)
			require.Equal(t, tt.body, string(result.Payload))
		})
	}
}

func TestAddUserMovie_upstreamStatusPreserved(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer backend.Close()

	client := New(Config{BaseURL: backend.URL})

	result, err := client.AddUserMovie(context.Background(), "tok", []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, result.Status)
}
