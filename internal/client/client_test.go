package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telanix/internal/models"
)

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.Response{Success: false, Error: msg, Code: code})
}

// fakeAPI stands in for the engagement API during client tests.
type fakeAPI struct {
	mux      *http.ServeMux
	likes    []uint
	ratings  []models.Rating
	reviews  []models.Review
	requests atomic.Int64
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux()}

	f.mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"token": "test-token",
			"user":  models.User{ID: 7, Email: "flow@example.com", Name: "Flow"},
		})
	})
	f.mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, nil)
	})
	f.mux.HandleFunc("/api/likes/user/7", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, f.likes)
	})
	f.mux.HandleFunc("/api/ratings/user/7", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, f.ratings)
	})
	f.mux.HandleFunc("/api/reviews/user/7", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, f.reviews)
	})
	f.mux.HandleFunc("/api/likes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			writeError(w, http.StatusUnauthorized, models.CodeUnauthorized, "Authentication required")
			return
		}
		writeEnvelope(w, http.StatusCreated, nil)
	})
	f.mux.HandleFunc("/api/likes/movie/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, nil)
	})
	f.mux.HandleFunc("/api/ratings", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, nil)
	})
	f.mux.HandleFunc("/api/ratings/movie/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, nil)
	})
	f.mux.HandleFunc("/api/reviews", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MovieID uint   `json:"movie_id"`
			Score   int    `json:"score"`
			Title   string `json:"title"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeEnvelope(w, http.StatusCreated, models.Review{
			ID: 42, UserID: 7, MovieID: body.MovieID, Score: body.Score, Title: body.Title,
		})
	})
	f.mux.HandleFunc("/api/reviews/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/helpful") {
			writeEnvelope(w, http.StatusOK, models.Review{ID: 42, Helpful: 1})
			return
		}
		switch r.Method {
		case http.MethodPut:
			var body struct {
				Score int    `json:"score"`
				Title string `json:"title"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeEnvelope(w, http.StatusOK, models.Review{ID: 42, UserID: 7, MovieID: 9, Score: body.Score, Title: body.Title})
		case http.MethodDelete:
			writeEnvelope(w, http.StatusOK, nil)
		}
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func TestMutationsFailClosedWhenUnauthenticated(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)
	ctx := context.Background()

	before := f.requests.Load()
	assert.ErrorIs(t, c.Like(ctx, 1), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Unlike(ctx, 1), ErrNotAuthenticated)
	assert.ErrorIs(t, c.SetRating(ctx, 1, 4), ErrNotAuthenticated)
	assert.ErrorIs(t, c.RemoveRating(ctx, 1), ErrNotAuthenticated)
	_, err := c.SubmitReview(ctx, 1, 4, "t", "c", false)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, c.DeleteReview(ctx, 1), ErrNotAuthenticated)

	assert.Equal(t, before, f.requests.Load(), "no network calls before login")
	assert.False(t, c.IsLiked(1))
}

func TestLoginReplacesMirrorWholesale(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.likes = []uint{3, 5}
	f.ratings = []models.Rating{{UserID: 7, MovieID: 3, Score: 4}}
	f.reviews = []models.Review{{ID: 11, UserID: 7, MovieID: 5, Score: 5, Title: "Great"}}

	c := New(srv.URL)
	ctx := context.Background()

	// Stale pre-login state must be discarded, not merged.
	c.likes[99] = struct{}{}

	user, err := c.Login(ctx, "flow@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, uint(7), c.CurrentUserID())

	assert.True(t, c.IsLiked(3))
	assert.True(t, c.IsLiked(5))
	assert.False(t, c.IsLiked(99))

	r, ok := c.RatingFor(3)
	require.True(t, ok)
	assert.Equal(t, 4, r.Score)

	reviews := c.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great", reviews[0].Title)
}

func TestLikeMirrorsServerAcknowledgment(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "flow@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, c.Like(ctx, 12))
	assert.True(t, c.IsLiked(12))

	require.NoError(t, c.ToggleLike(ctx, 12))
	assert.False(t, c.IsLiked(12))

	require.NoError(t, c.SetRating(ctx, 12, 5))
	r, ok := c.RatingFor(12)
	require.True(t, ok)
	assert.Equal(t, 5, r.Score)

	require.NoError(t, c.RemoveRating(ctx, 12))
	_, ok = c.RatingFor(12)
	assert.False(t, ok)
}

func TestMirrorUnchangedOnServerRejection(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "flow@example.com", "password123")
	require.NoError(t, err)

	// Break the session token so the server refuses the mutation.
	c.mu.Lock()
	c.token = "stale"
	c.mu.Unlock()

	err = c.Like(ctx, 12)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.CodeUnauthorized, apiErr.Code)
	assert.False(t, c.IsLiked(12), "rejected mutation must not touch the mirror")
}

func TestSubmitReviewEditsExistingInPlace(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.reviews = []models.Review{{ID: 42, UserID: 7, MovieID: 9, Score: 3, Title: "Fine"}}
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "flow@example.com", "password123")
	require.NoError(t, err)

	review, err := c.SubmitReview(ctx, 9, 5, "Changed my mind", "Rewatched it", false)
	require.NoError(t, err)
	assert.Equal(t, uint(42), review.ID, "existing review is edited, not duplicated")
	assert.Equal(t, 5, review.Score)

	reviews := c.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, "Changed my mind", reviews[0].Title)

	require.NoError(t, c.DeleteReview(ctx, 42))
	assert.Empty(t, c.Reviews())
}

func TestLogoutClearsMirror(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.likes = []uint{3}
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "flow@example.com", "password123")
	require.NoError(t, err)
	require.True(t, c.IsLiked(3))

	require.NoError(t, c.Logout(ctx))
	assert.Zero(t, c.CurrentUserID())
	assert.False(t, c.IsLiked(3))
	assert.ErrorIs(t, c.Like(ctx, 3), ErrNotAuthenticated)
}
