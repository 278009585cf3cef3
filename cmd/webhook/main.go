package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/waclient/whatsapp-go/whatsapp"
)

// This example runs a webhook listener for bridge events. Inbound message
// events are acknowledged immediately and queued to a bounded worker pool
// which pulls the full chat state over the REST API, so traffic spikes never
// create unbounded goroutines.
func main() {
	_ = godotenv.Load()

	client := whatsapp.NewClient(os.Getenv("WHATSAPP_API_KEY"),
		whatsapp.WithMaxRetries(5),
		whatsapp.WithBackoffBase(1*time.Second),
		whatsapp.WithBackoffMax(2*time.Minute),
	)

	webhookSecret := os.Getenv("WHATSAPP_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Fatal("WHATSAPP_WEBHOOK_SECRET environment variable is required")
	}

	// Bounded queue plus a fixed worker count caps concurrent REST pulls.
	jobQueue := make(chan chatJob, 100)
	for i := 0; i < 5; i++ {
		go worker(client, jobQueue)
	}

	http.HandleFunc("/whatsapp/webhook", webhookHandler(webhookSecret, jobQueue))

	log.Println("Webhook listener on :8080...")
	log.Fatal(http.ListenAndServe(":8080", nil))
}

// chatJob identifies a chat to refresh after a message event.
type chatJob struct {
	SessionID string
	ChatID    string
}

// messageEventData is the subset of the message event payload the listener
// needs to locate the originating chat.
type messageEventData struct {
	From string `json:"from"`
}

func webhookHandler(webhookSecret string, jobQueue chan<- chatJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := whatsapp.ParseWebhook(r, webhookSecret)
		if err != nil {
			log.Printf("Rejected webhook: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		log.Printf("Received webhook event: session=%s event=%s", event.SessionID, event.Event)

		// Acknowledge quickly; the REST pull happens in the background.
		w.WriteHeader(http.StatusOK)

		if event.Event != "message" {
			return
		}

		var data messageEventData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.From == "" {
			log.Printf("Message event without a usable sender, skipping")
			return
		}

		select {
		case jobQueue <- chatJob{SessionID: event.SessionID, ChatID: data.From}:
		default:
			log.Printf("Worker pool full, dropping refresh for chat %s", data.From)
		}
	}
}

func worker(client *whatsapp.Client, jobQueue <-chan chatJob) {
	for job := range jobQueue {
		processChat(client, job)
	}
}

// processChat pulls the chat a message event originated from and logs its
// current unread state.
func processChat(client *whatsapp.Client, job chatJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chat, err := client.Chat.GetByID(ctx, job.SessionID, job.ChatID)
	if err != nil {
		log.Printf("[Webhook Worker] Failed to fetch chat %s: %v", job.ChatID, err)
		return
	}

	log.Printf("[Webhook Worker] Chat refreshed: id=%s name=%q unread=%d group=%t",
		chat.ID, chat.Name, chat.UnreadCount, chat.IsGroup)
}
