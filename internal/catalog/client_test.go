package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestCardID(t *testing.T) {
	if got := (Card{"id": "tw-001"}).ID(); got != "tw-001" {
		t.Errorf("ID() = %q, want tw-001", got)
	}
	if got := (Card{"id": 42}).ID(); got != "" {
		t.Errorf("ID() = %q, want empty for non-string id", got)
	}
	if got := (Card{}).ID(); got != "" {
		t.Errorf("ID() = %q, want empty", got)
	}
}

func TestSetCardsWalksPages(t *testing.T) {
	const total = 5
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		if got := r.URL.Query().Get("q"); got != `set.name:"Twilight Masquerade"` {
			t.Errorf("q = %q", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "key-123" {
			t.Errorf("X-Api-Key = %q", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		start := (page - 1) * pageSize
		var data []Card
		for i := start; i < total && i < start+pageSize; i++ {
			data = append(data, Card{"id": fmt.Sprintf("tw-%03d", i+1)})
		}
		_ = json.NewEncoder(w).Encode(cardsPage{
			Data:       data,
			Page:       page,
			PageSize:   pageSize,
			Count:      len(data),
			TotalCount: total,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123", WithPageSize(2))
	cards, err := client.SetCards(context.Background(), "Twilight Masquerade")
	if err != nil {
		t.Fatalf("SetCards: %v", err)
	}
	if len(cards) != total {
		t.Fatalf("got %d cards, want %d", len(cards), total)
	}
	for i, c := range cards {
		want := fmt.Sprintf("tw-%03d", i+1)
		if c.ID() != want {
			t.Errorf("card %d id = %q, want %q", i, c.ID(), want)
		}
	}
	if len(requests) != 3 {
		t.Errorf("made %d requests, want 3", len(requests))
	}
}

func TestSetCardsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(cardsPage{Data: nil, TotalCount: 0})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	cards, err := client.SetCards(context.Background(), "Nonexistent Set")
	if err != nil {
		t.Fatalf("SetCards: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("got %d cards, want 0", len(cards))
	}
}

func TestSetCardsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.SetCards(context.Background(), "Twilight Masquerade"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSetCardsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.SetCards(context.Background(), "Twilight Masquerade"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSetCardsConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.SetCards(context.Background(), "Twilight Masquerade"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCardFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/tw-001" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": Card{"id": "tw-001", "name": "Sprigatito"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	card, err := client.Card(context.Background(), "tw-001")
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	if card["name"] != "Sprigatito" {
		t.Errorf("unexpected card: %v", card)
	}
	if _, ok := card["data"]; ok {
		t.Error("envelope was not unwrapped")
	}
}

func TestCardNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.Card(context.Background(), "missing"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
