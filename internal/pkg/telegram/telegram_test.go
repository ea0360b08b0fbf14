package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testConfig(apiBase string) Config {
	return Config{
		BotToken:      "test-token",
		ChatID:        "-100123",
		AuthorTopicID: 7,
		EditorTopicID: 9,
		APIBase:       apiBase,
	}
}

func TestSendRoutesToTopicThread(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), zap.NewNop())
	if err := client.Send(context.Background(), TopicEditor, "  decision made  \n"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.ChatID != "-100123" || gotBody.MessageThreadID != 9 {
		t.Fatalf("unexpected destination: %+v", gotBody)
	}
	if gotBody.Text != "decision made" {
		t.Fatalf("expected trimmed text, got %q", gotBody.Text)
	}
}

func TestSendAuthorAndEditorThreadsDiffer(t *testing.T) {
	var threads []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		threads = append(threads, body.MessageThreadID)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), zap.NewNop())
	if err := client.Send(context.Background(), TopicAuthor, "hi author"); err != nil {
		t.Fatalf("send author: %v", err)
	}
	if err := client.Send(context.Background(), TopicEditor, "hi editor"); err != nil {
		t.Fatalf("send editor: %v", err)
	}

	if len(threads) != 2 || threads[0] != 7 || threads[1] != 9 {
		t.Fatalf("unexpected thread routing: %v", threads)
	}
}

func TestSendUnconfiguredFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for unconfigured client")
	}))
	defer srv.Close()

	client := New(Config{APIBase: srv.URL}, zap.NewNop())
	err := client.Send(context.Background(), TopicAuthor, "dropped")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), zap.NewNop())
	err := client.Send(context.Background(), TopicAuthor, "anyone there")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected api error with description, got %v", err)
	}
}

func TestNotifySwallowsDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), zap.NewNop())
	// must not panic or propagate
	client.Notify(TopicEditor, "best effort")
}
