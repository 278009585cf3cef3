package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/waclient/whatsapp-go/whatsapp"
)

// This example walks the full happy path of a bridge integration: start a
// session, wait for it to authenticate (printing the QR code payload if one
// is needed), then send a text message to a recipient.
func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("WHATSAPP_API_KEY")
	if apiKey == "" {
		log.Fatal("WHATSAPP_API_KEY environment variable is required")
	}

	sessionID := os.Getenv("WHATSAPP_SESSION_ID")
	if sessionID == "" {
		sessionID = "default"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := whatsapp.NewMetricsCollector()

	client := whatsapp.NewClient(apiKey,
		whatsapp.WithBaseURL(envOr("WHATSAPP_BASE_URL", "http://localhost:3000")),
		whatsapp.WithMaxRetries(5),
		whatsapp.WithBackoffBase(1*time.Second),
		whatsapp.WithBackoffMax(2*time.Minute),
		whatsapp.WithLogger(logger),
		whatsapp.WithMetrics(metrics),
	)

	// Expose client metrics for scraping while the example runs.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
		log.Println(http.ListenAndServe(":9090", mux))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := client.Session.Start(ctx, sessionID); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	status, err := waitForSession(ctx, client, sessionID)
	if err != nil {
		log.Fatalf("Session never became ready: %v", err)
	}
	log.Printf("Session %s ready (status=%s)", sessionID, status.Status)

	recipient := os.Getenv("WHATSAPP_RECIPIENT")
	if recipient == "" {
		log.Println("Set WHATSAPP_RECIPIENT (e.g. 1234567890@c.us) to send a test message.")
		return
	}

	to, err := whatsapp.FormatPhoneNumber(whatsapp.CleanPhoneNumber(recipient))
	if err != nil {
		// The recipient may already be a full chat ID (including groups).
		to = recipient
	}

	msg := whatsapp.NewTextMessage(to, "Hello from whatsapp-go!")
	result, err := client.Message.Send(ctx, sessionID, msg)
	if err != nil {
		log.Fatalf("Failed to send message: %v", err)
	}

	log.Printf("Message sent: id=%s status=%s", result.MessageID, result.Status)
}

// waitForSession polls session status until the bridge reports it ready,
// printing the QR code payload whenever one is offered for pairing.
func waitForSession(ctx context.Context, client *whatsapp.Client, sessionID string) (*whatsapp.SessionStatus, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var printedQR string
	for {
		status, err := client.Session.Status(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if status.Ready {
			return status, nil
		}

		qr, err := client.Session.QRCode(ctx, sessionID)
		if err == nil && qr != "" && qr != printedQR {
			printedQR = qr
			fmt.Printf("\nScan this QR payload with the WhatsApp app:\n%s\n\n", qr)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
