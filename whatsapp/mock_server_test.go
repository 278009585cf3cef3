package whatsapp

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newMockServer creates an httptest.Server configured to respond dynamically
// to specific bridge API routes with literal mock JSON payloads.
func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	// 1. Session - Start Mock
	mux.HandleFunc("/session/start/test-session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"sessionId": "test-session", "ready": false, "status": "started"}
		}`))
	})

	// 2. Session - Status Mock
	mux.HandleFunc("/session/status/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"sessionId": "test-session", "ready": true, "status": "authenticated"}
		}`))
	})

	// 3. Session - QR Mock
	mux.HandleFunc("/session/qr/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"qr": "qr-code-data"}}`))
	})

	// 4. Session - Terminate Mock
	mux.HandleFunc("/session/terminate/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Session terminated"}}`))
	})

	// 5. Message - Send Mock
	mux.HandleFunc("/client/sendMessage/test-session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-api-key-12345" {
			t.Errorf("expected X-API-Key header, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"messageId": "msg_123", "status": "sent"}
		}`))
	})

	// 6. Message - Delete / Forward / React Mocks
	mux.HandleFunc("/client/deleteMessage/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Message deleted"}}`))
	})
	mux.HandleFunc("/client/forwardMessage/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"messageId": "msg_456", "status": "forwarded"}
		}`))
	})
	mux.HandleFunc("/client/reactToMessage/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Reaction added"}}`))
	})

	// 7. Chat Mocks
	mux.HandleFunc("/client/getChats/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"chats": [
				{"id": "1234567890@c.us", "name": "Test Chat", "timestamp": 1623456789, "unreadCount": 2},
				{"id": "123456789-987654321@g.us", "name": "Test Group", "isGroup": true, "timestamp": 1623456790}
			]}
		}`))
	})
	mux.HandleFunc("/client/getChatById/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"id": "1234567890@c.us", "name": "Test Chat", "timestamp": 1623456789, "archived": false}
		}`))
	})
	mux.HandleFunc("/client/archiveChat/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Chat archived"}}`))
	})
	mux.HandleFunc("/client/unarchiveChat/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Chat unarchived"}}`))
	})

	// 8. Contact Mocks
	mux.HandleFunc("/client/getContacts/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"contacts": [
				{"id": "1234567890@c.us", "name": "John Doe", "pushname": "John", "number": "1234567890", "isUser": true},
				{"id": "9876543210@c.us", "name": "Jane Doe", "number": "9876543210", "isUser": true, "isMyContact": true}
			]}
		}`))
	})
	mux.HandleFunc("/client/getContactById/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"id": "1234567890@c.us", "name": "John Doe", "pushname": "John", "number": "1234567890", "isUser": true}
		}`))
	})
	mux.HandleFunc("/client/blockContact/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Contact blocked"}}`))
	})
	mux.HandleFunc("/client/unblockContact/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Contact unblocked"}}`))
	})

	// 9. Group Mocks
	mux.HandleFunc("/client/createGroup/test-session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"groupId": "123456789-987654321@g.us", "name": "Test Group"}
		}`))
	})
	mux.HandleFunc("/client/getGroupById/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"id": "123456789-987654321@g.us",
				"name": "Test Group",
				"participants": [
					{"id": "1111111111@c.us", "isAdmin": true},
					{"id": "2222222222@c.us"}
				],
				"admins": ["1111111111@c.us"]
			}
		}`))
	})
	mux.HandleFunc("/client/addGroupParticipants/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Participants added"}}`))
	})
	mux.HandleFunc("/client/removeGroupParticipants/test-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"message": "Participants removed"}}`))
	})

	// 10. Rate Limit Explicit Mock (always 429)
	mux.HandleFunc("/429-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"success": false, "error": "Too Many Requests", "code": "RATE_LIMIT"}`))
	})

	// 11. Broken Endpoint Mock (Auth Error)
	mux.HandleFunc("/403-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success": false, "error": "Forbidden", "code": "FORBIDDEN"}`))
	})

	// 12. Server Error Mock (always 500)
	mux.HandleFunc("/500-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "error": "Internal server error", "code": "SERVER_ERROR"}`))
	})

	// 13. Envelope Failure Mock (200 with success=false)
	mux.HandleFunc("/session/status/missing-session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "Session not found", "code": "SESSION_NOT_FOUND"}`))
	})

	// 14. Context Cancellation Delay Mock
	mux.HandleFunc("/delay", func(w http.ResponseWriter, r *http.Request) {
		// Used to simulate contexts failing during network reads
		// Select blocks until handler context is canceled
		<-r.Context().Done()
	})

	return httptest.NewServer(mux)
}

// newFlakyServer returns a server that fails with 500 for the first
// failures requests on every path, then answers with the given body. The
// returned counter reports total requests served.
func newFlakyServer(t *testing.T, failures int64, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success": false, "error": "transient failure", "code": "SERVER_ERROR"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	return ts, &hits
}

// newMockClient builds a generic bridge client connected directly to the
// mockServer base URL. Rate limiting is disabled and backoffs are shortened
// so tests don't stall.
func newMockClient(ts *httptest.Server, opts ...Option) *Client {
	defaultOpts := []Option{
		WithBaseURL(ts.URL),
		WithRateLimiting(false),
		WithMaxRetries(3),
		WithBackoffBase(5 * time.Millisecond),
		WithBackoffMax(50 * time.Millisecond),
	}
	defaultOpts = append(defaultOpts, opts...)
	return NewClient("test-api-key-12345", defaultOpts...)
}
