//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quotestash/quotestash/internal/auth"
	"github.com/quotestash/quotestash/internal/model"
	"github.com/quotestash/quotestash/internal/repository"
)

const (
	systemUserID = "system"
	systemEmail  = "system@quotestash.local"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiKeyCreateData struct {
	ID     string   `json:"id"`
	Key    string   `json:"key"`
	Scopes []string `json:"scopes"`
}

type collectionData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

type quoteData struct {
	ID           string `json:"id"`
	CollectionID string `json:"collectionId"`
	Text         string `json:"text"`
	IsFavorite   bool   `json:"isFavorite"`
}

type quoteListData struct {
	Items []quoteData `json:"items"`
	Total int         `json:"total"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("QUOTESTASH_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	bootstrapKey := bootstrapAdminKey(t, dbURL)
	testKey := createAPIKey(t, baseURL, bootstrapKey)

	// Full quote lifecycle: collection, quote, favorite, delete.
	collection := createCollection(t, baseURL, testKey, "Reading List")
	quote := createQuote(t, baseURL, testKey, collection.ID, "The unexamined life is not worth living.")

	list := listQuotes(t, baseURL, testKey, collection.ID, "")
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("expected 1 quote after create, got %d", list.Total)
	}

	favorited := updateQuote(t, baseURL, testKey, collection.ID, quote.ID, map[string]any{"isFavorite": true})
	if !favorited.IsFavorite {
		t.Fatalf("expected quote to be favorited")
	}

	favs := listQuotes(t, baseURL, testKey, collection.ID, "favoritesOnly=true")
	if favs.Total != 1 {
		t.Fatalf("expected 1 favorite, got %d", favs.Total)
	}

	deleteQuote(t, baseURL, testKey, collection.ID, quote.ID)

	empty := listQuotes(t, baseURL, testKey, collection.ID, "")
	if empty.Total != 0 {
		t.Fatalf("expected empty collection after delete, got %d quotes", empty.Total)
	}
}

func TestE2EOwnershipIsolation(t *testing.T) {
	baseURL := envOrDefault("QUOTESTASH_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	bootstrapKey := bootstrapAdminKey(t, dbURL)
	ownerKey := createAPIKey(t, baseURL, bootstrapKey)

	collection := createCollection(t, baseURL, ownerKey, "Private Stash")

	otherKey := bootstrapKeyForUser(t, dbURL, "e2e-other", "e2e-other@quotestash.local")

	// A different user must see the collection as missing, not forbidden.
	var env envelope
	status := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/collections/%s/quotes", baseURL, collection.ID),
		otherKey, nil, &env)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign collection, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND error code, got %+v", env.Error)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func bootstrapAdminKey(t *testing.T, dbURL string) string {
	t.Helper()
	return bootstrapKeyForUser(t, dbURL, systemUserID, systemEmail)
}

func bootstrapKeyForUser(t *testing.T, dbURL, userID, email string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer repo.Close()

	if err := ensureUser(ctx, repo, userID, email); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	generated, err := auth.GenerateAPIKey(auth.EnvLive)
	if err != nil {
		t.Fatalf("generate api key: %v", err)
	}

	apiKey := &model.APIKey{
		ID:            ulid.Make().String(),
		UserID:        userID,
		KeyHash:       generated.Hash,
		KeyPrefix:     generated.Prefix,
		Scopes:        []string{model.ScopeAdmin},
		RateLimitTier: model.TierUnlimited,
		Name:          "e2e-bootstrap",
		CreatedAt:     time.Now().UTC(),
	}

	if err := repo.CreateAPIKey(ctx, apiKey); err != nil {
		t.Fatalf("create api key: %v", err)
	}

	return generated.Plaintext
}

func ensureUser(ctx context.Context, repo *repository.Repository, userID, email string) error {
	if existing, err := repo.GetUserByID(ctx, userID); err == nil {
		if existing.Email != email {
			return fmt.Errorf("user %s exists with different email: %s", userID, existing.Email)
		}
		return nil
	}

	if byEmail, err := repo.GetUserByEmail(ctx, email); err == nil {
		if byEmail.ID != userID {
			return fmt.Errorf("email %s already used by user %s", email, byEmail.ID)
		}
		return nil
	}

	user := &model.User{ID: userID, Email: email, CreatedAt: time.Now().UTC()}
	return repo.CreateUser(ctx, user)
}

func createAPIKey(t *testing.T, baseURL, bootstrapKey string) string {
	t.Helper()

	payload := map[string]any{
		"name":   "e2e-key",
		"scopes": []string{"admin"},
	}

	var env envelope
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/api-keys", bootstrapKey, payload, &env)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from api key create, got %d", status)
	}

	var data apiKeyCreateData
	decodeData(t, env, &data)
	if data.Key == "" {
		t.Fatalf("api key response missing key")
	}
	return data.Key
}

func createCollection(t *testing.T, baseURL, apiKey, name string) collectionData {
	t.Helper()

	payload := map[string]any{
		"name": name,
	}

	var env envelope
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/collections", apiKey, payload, &env)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from collection create, got %d", status)
	}

	var data collectionData
	decodeData(t, env, &data)
	if data.ID == "" || data.Name != name {
		t.Fatalf("collection create response missing fields: %+v", data)
	}
	return data
}

func createQuote(t *testing.T, baseURL, apiKey, collectionID, text string) quoteData {
	t.Helper()

	payload := map[string]any{
		"text":         text,
		"attributedTo": "Socrates",
		"tags":         "philosophy,life",
	}

	var env envelope
	status := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/collections/%s/quotes", baseURL, collectionID),
		apiKey, payload, &env)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from quote create, got %d", status)
	}

	var data quoteData
	decodeData(t, env, &data)
	if data.ID == "" || data.CollectionID != collectionID {
		t.Fatalf("quote create response missing fields: %+v", data)
	}
	return data
}

func listQuotes(t *testing.T, baseURL, apiKey, collectionID, query string) quoteListData {
	t.Helper()

	endpoint := fmt.Sprintf("%s/api/v1/collections/%s/quotes", baseURL, collectionID)
	if query != "" {
		endpoint += "?" + query
	}

	var env envelope
	status := doJSON(t, http.MethodGet, endpoint, apiKey, nil, &env)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from quote list, got %d", status)
	}

	var data quoteListData
	decodeData(t, env, &data)
	return data
}

func updateQuote(t *testing.T, baseURL, apiKey, collectionID, quoteID string, patch map[string]any) quoteData {
	t.Helper()

	var env envelope
	status := doJSON(t, http.MethodPatch,
		fmt.Sprintf("%s/api/v1/collections/%s/quotes/%s", baseURL, collectionID, quoteID),
		apiKey, patch, &env)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from quote update, got %d", status)
	}

	var data quoteData
	decodeData(t, env, &data)
	return data
}

func deleteQuote(t *testing.T, baseURL, apiKey, collectionID, quoteID string) {
	t.Helper()

	var env envelope
	status := doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/collections/%s/quotes/%s", baseURL, collectionID, quoteID),
		apiKey, nil, &env)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from quote delete, got %d", status)
	}
	if !env.Success {
		t.Fatalf("expected success envelope from delete")
	}
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if !env.Success {
		t.Fatalf("expected success envelope, got error: %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode envelope data: %v", err)
	}
}

func doJSON(t *testing.T, method, url, apiKey string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(apiKey) != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}

// TestE2ERateLimiting validates that rate limiting returns 429 with proper headers.
func TestE2ERateLimiting(t *testing.T) {
	baseURL := envOrDefault("QUOTESTASH_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer repo.Close()

	if err := ensureUser(ctx, repo, systemUserID, systemEmail); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	generated, err := auth.GenerateAPIKey(auth.EnvLive)
	if err != nil {
		t.Fatalf("generate api key: %v", err)
	}

	apiKey := &model.APIKey{
		ID:            ulid.Make().String(),
		UserID:        systemUserID,
		KeyHash:       generated.Hash,
		KeyPrefix:     generated.Prefix,
		Scopes:        []string{model.ScopeRead},
		RateLimitTier: model.TierFree,
		Name:          "e2e-ratelimit-test",
		CreatedAt:     time.Now().UTC(),
	}

	if err := repo.CreateAPIKey(ctx, apiKey); err != nil {
		t.Fatalf("create free-tier api key: %v", err)
	}

	testKey := generated.Plaintext

	client := &http.Client{Timeout: 10 * time.Second}
	var rateLimited bool
	var lastResp *http.Response

	// Free tier bursts at 10, so 20 rapid requests must trip the limiter.
	for i := 0; i < 20; i++ {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/collections", nil)
		if err != nil {
			t.Fatalf("create request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+testKey)

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			rateLimited = true
			lastResp = resp
			break
		}
		resp.Body.Close()
	}

	if !rateLimited {
		t.Fatalf("expected 429 rate limit after burst, but never hit rate limit")
	}

	defer lastResp.Body.Close()

	limitHeader := lastResp.Header.Get("X-RateLimit-Limit")
	remainingHeader := lastResp.Header.Get("X-RateLimit-Remaining")
	retryAfterHeader := lastResp.Header.Get("Retry-After")

	if limitHeader == "" {
		t.Error("missing X-RateLimit-Limit header on 429 response")
	}
	if remainingHeader != "0" {
		t.Errorf("expected X-RateLimit-Remaining=0, got %s", remainingHeader)
	}
	if retryAfterHeader == "" {
		t.Log("Retry-After header not present (optional but recommended)")
	}

	var env envelope
	if err := json.NewDecoder(lastResp.Body).Decode(&env); err != nil {
		t.Fatalf("decode 429 response: %v", err)
	}
	if env.Success {
		t.Error("429 response has success=true")
	}
	if env.Error == nil || env.Error.Code != "RATE_LIMITED" {
		t.Errorf("429 response missing RATE_LIMITED error code: %+v", env.Error)
	}
}

// TestE2ENoSecretsInResponses validates that API keys are not echoed back.
func TestE2ENoSecretsInResponses(t *testing.T) {
	baseURL := envOrDefault("QUOTESTASH_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	bootstrapKey := bootstrapAdminKey(t, dbURL)

	client := &http.Client{Timeout: 10 * time.Second}

	// Error responses must not leak the Authorization header value.
	fakeKey := "qs_live_abcdef_" + strings.Repeat("0", 32)
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/collections", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+fakeKey)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	bodyStr := string(body)

	if strings.Contains(bodyStr, fakeKey) {
		t.Error("SECURITY: Error response leaked Authorization header value")
	}
	if strings.Contains(bodyStr, bootstrapKey) {
		t.Error("SECURITY: Response contains the bootstrap API key")
	}

	// Successful responses must not echo the key either.
	req2, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/collections", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req2.Header.Set("Authorization", "Bearer "+bootstrapKey)

	resp2, err := client.Do(req2)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body2, _ := io.ReadAll(resp2.Body)
	resp2.Body.Close()

	if strings.Contains(string(body2), bootstrapKey) {
		t.Error("SECURITY: Successful response echoed back the API key")
	}
}
