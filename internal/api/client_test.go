package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dookkeobi/leakpot/internal/common"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens is a minimal in-memory TokenSource.
type fakeTokens struct {
	mu    sync.Mutex
	token string
	sets  []string
}

func (f *fakeTokens) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.sets = append(f.sets, token)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeTokens, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{token: "tok-1"}
	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, tokens)
	require.NoError(t, err)

	// Keep retry backoff out of test runtime.
	client.retryOpts = common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	return client, tokens, server
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.Error(t, (&Config{BaseURL: "ftp://x"}).Validate())
	assert.NoError(t, (&Config{BaseURL: "https://api.example.com"}).Validate())
}

func TestGetMonthlyBudgetsMapsBudgetToThreshold(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/budgets/2025/7", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "category": "Food", "spending": 350000, "budget": 300000, "initialBudget": 300000},
				{"id": 2, "category": "Cafe", "spending": 100000, "budget": 150000, "initialBudget": 150000},
			},
			"success": true,
		})
	}))

	categories, err := client.GetMonthlyBudgets(context.Background(), model.Period{Year: 2025, Month: 7})
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, model.Category{ID: 1, Name: "Food", Spending: 350000, Threshold: 300000}, categories[0])
	assert.Equal(t, int64(150000), categories[1].Threshold)
}

func TestGetMonthlyBudgetsRejectsInvalidPeriod(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetMonthlyBudgets(context.Background(), model.Period{Year: 2025, Month: 13})
	assert.Error(t, err)
}

func TestUpdateBudgetSendsPatchBody(t *testing.T) {
	var got map[string]int64
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/budgets", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]int64{"budgetId": 2, "budget": 155000},
		})
	}))

	err := client.UpdateBudget(context.Background(), 2, 155000)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got["budgetId"])
	assert.Equal(t, int64(155000), got["budget"])
}

func TestGetRetriesTransientServerError(t *testing.T) {
	var calls atomic.Int32
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "category": "Food", "spending": 100000, "budget": 300000},
			},
		})
	}))

	categories, err := client.GetMonthlyBudgets(context.Background(), model.Period{Year: 2025, Month: 7})
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad period"})
	}))

	_, err := client.GetYearlyBudgets(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
}

func TestGetExhaustedRetriesKeepErrorChain(t *testing.T) {
	var calls atomic.Int32
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	}))

	_, err := client.GetYearlyBudgets(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.ErrorIs(t, err, common.ErrServer)
}

func TestUnauthorizedTriggersSingleReissueAndRetry(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.URL.Path+" "+r.Header.Get("Authorization"))
		mu.Unlock()

		switch r.URL.Path {
		case "/auth/reissue":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]string{"accessToken": "tok-2"},
			})
		case "/api/users":
			if r.Header.Get("Authorization") != "Bearer tok-2" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "expired"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"name": "Kongjwi", "email": "k@example.com", "gender": "F", "age": 25},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	info, err := client.GetUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kongjwi", info.Name)
	assert.Equal(t, "tok-2", tokens.AccessToken())
	assert.Equal(t, []string{"tok-2"}, tokens.sets)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[0], "/api/users")
	assert.Contains(t, calls[1], "/auth/reissue")
	assert.Contains(t, calls[2], "/api/users")
}

func TestReissueFailureFailsThrough(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no session"})
	}))

	_, err := client.GetUserInfo(context.Background())
	assert.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestErrorNormalization(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "boom", "detail": "db down"})
	}))

	_, err := client.GetYearlyBudgets(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
	assert.NotEmpty(t, apiErr.Details)
	assert.ErrorIs(t, err, common.ErrServer)
}

func TestErrorWithoutMessageFallsBackToStatusText(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetYearlyBudgets(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetYearlyBudgets(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/budgets", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"budgetDate": "2025-06", "leaked": true},
				{"budgetDate": "2025-07", "leaked": false},
			},
		})
	}))

	summaries, err := client.GetYearlyBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, model.MonthSummary{BudgetDate: "2025-06", Leaked: true}, summaries[0])
}

func TestGetMonthlyTransactionsParsesTimestamps(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions/2025/8", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 10, "transactionDateTime": "2025-08-15T10:30", "amount": 12000, "merchantName": "Cafe Dalgona", "category": "Cafe"},
			},
		})
	}))

	txns, err := client.GetMonthlyTransactions(context.Background(), model.Period{Year: 2025, Month: 8})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Cafe Dalgona", txns[0].MerchantName)
	assert.Equal(t, 2025, txns[0].DateTime.Year())
	assert.Equal(t, 30, txns[0].DateTime.Minute())
}
