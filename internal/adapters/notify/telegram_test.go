package notify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/domain"
)

func TestNewTelegram_RequiresConfig(t *testing.T) {
	assert.Nil(t, NewTelegram("", "1"))
	assert.Nil(t, NewTelegram("tok", " , "))
	tg := NewTelegram("tok", "1, 2")
	require.NotNil(t, tg)
	assert.Equal(t, []string{"1", "2"}, tg.chatIDs)
}

func TestTelegram_SendsToEveryChat(t *testing.T) {
	var mu sync.Mutex
	var chats []string
	var text string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok/sendMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		mu.Lock()
		chats = append(chats, r.PostForm.Get("chat_id"))
		text = r.PostForm.Get("text")
		mu.Unlock()
	}))
	defer srv.Close()

	tg := NewTelegram("tok", "10,20")
	tg.apiBase = srv.URL
	o := &domain.Order{
		OrderNumber:  "ORD-1-ABCDE",
		CustomerName: "سارة",
		Items:        []domain.OrderItem{{Name: "حقيبة", Quantity: 2, Total: decimal.NewFromInt(170000)}},
		Total:        decimal.NewFromInt(170000),
	}
	require.NoError(t, tg.OrderCreated(context.Background(), o))

	assert.Equal(t, []string{"10", "20"}, chats)
	assert.Contains(t, text, "ORD-1-ABCDE")
	assert.Contains(t, text, "حقيبة x2: 170000")
}

func TestTelegram_ReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chat not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	tg := NewTelegram("tok", "10")
	tg.apiBase = srv.URL
	o := &domain.Order{OrderNumber: "ORD-1-ABCDE", Status: domain.OrderStatusReady}

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	err := tg.OrderStatusChanged(context.Background(), o, domain.OrderStatusProcessing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Empty(t, buf.String(), "the caller owns failure logging")
}
