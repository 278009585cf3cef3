package whatsapp

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type sendMockTransport struct{}

func (m *sendMockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(`{"success": true, "data": {"messageId": "msg_123", "status": "sent"}}`)),
		Header:     make(http.Header),
	}, nil
}

func BenchmarkMessageService_Send(b *testing.B) {
	client := NewClient("bench-key",
		WithHTTPClient(&http.Client{Transport: &sendMockTransport{}}),
		WithRateLimiting(false),
	)

	ctx := context.Background()
	msg := NewTextMessage("1234567890@c.us", "benchmark message")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := client.Message.Send(ctx, "bench-session", msg)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkParseContactID(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseContactID("123456789-987654321@g.us")
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkSanitizeMessageText(b *testing.B) {
	text := "  Hello\tWorld\r\nthis is a\n\nlonger   message  "
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SanitizeMessageText(text, true)
	}
}
