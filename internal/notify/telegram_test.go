package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hamed0406/webmon/internal/domain"
)

func TestTelegram_SendsMessage(t *testing.T) {
	var gotPath string
	var got telegramMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	tg := NewTelegram("123:abc", "-1001")
	tg.BaseURL = ts.URL

	require.NoError(t, tg.Notify(context.Background(), testEvent(domain.Up(42*time.Millisecond))))
	require.Equal(t, "/bot123:abc/sendMessage", gotPath)
	require.Equal(t, "-1001", got.ChatID)
	require.True(t, strings.HasPrefix(got.Text, "🟢 google is up\n"))
	require.Contains(t, got.Text, "State: Up (42ms)")
}

func TestTelegram_APIErrorIsReported(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer ts.Close()

	tg := NewTelegram("123:abc", "nope")
	tg.BaseURL = ts.URL

	err := tg.Notify(context.Background(), testEvent(domain.Down()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat not found")
}

func TestTelegram_TransportErrorHidesToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	tg := NewTelegram("secret-token", "1")
	tg.BaseURL = base
	tg.Client = &http.Client{Timeout: time.Second}

	err := tg.Notify(context.Background(), testEvent(domain.Down()))
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-token")
}

func TestNewTelegram_RequiresTokenAndChat(t *testing.T) {
	require.Nil(t, NewTelegram("", "1"))
	require.Nil(t, NewTelegram("t", ""))
}
