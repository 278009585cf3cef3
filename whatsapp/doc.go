// Package whatsapp provides a production-grade Go client for a WhatsApp Web
// REST bridge (whatsapp-web.js style HTTP API).
//
// The client handles API-key authentication, local rate limiting via a token
// bucket, automatic retries with exponential backoff and jitter on transient
// failures (network errors, timeouts, 429 and 5xx responses), request payload
// validation before any I/O, webhook signature verification via HMAC-SHA256,
// and optional Prometheus instrumentation.
//
// # Quick Start
//
//	client := whatsapp.NewClient(os.Getenv("WHATSAPP_API_KEY"))
//
//	status, err := client.Session.Start(ctx, "my-session")
//
// Once the session reports ready, send a message:
//
//	msg := whatsapp.NewTextMessage("1234567890@c.us", "Hello from Go")
//	result, err := client.Message.Send(ctx, "my-session", msg)
//
// # Errors
//
// Failures are reported as typed errors that support errors.As and
// errors.Unwrap. Validation failures (*ValidationError) are detected locally
// and never reach the network; transport failures (*TransportError), rate
// limits (*RateLimitError) and server errors (*ServerError) are retried with
// backoff before being surfaced.
//
// # Webhooks
//
// Use ParseWebhook to validate and decode incoming bridge webhook payloads:
//
//	event, err := whatsapp.ParseWebhook(r, "webhook_secret")
package whatsapp
