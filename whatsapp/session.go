package whatsapp

import (
	"context"
	"net/http"
)

// SessionStatus represents the state of a WhatsApp Web session on the bridge.
type SessionStatus struct {
	SessionID string  `json:"sessionId"`
	Ready     bool    `json:"ready"`
	Status    string  `json:"status"`
	QR        *string `json:"qr,omitempty"`
	Webhook   *string `json:"webhook,omitempty"`
}

// QRCode represents the QR code payload used to link a phone to a session.
type QRCode struct {
	QR string `json:"qr"`
}

// SessionService handles communication with the session lifecycle endpoints.
type SessionService struct {
	client *Client
}

// Start initializes a new WhatsApp Web session on the bridge. The session is
// not usable until Status reports it ready (typically after a QR scan).
func (s *SessionService) Start(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var status SessionStatus
	if err := s.client.call(ctx, http.MethodGet, "/session/start/"+sessionID, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Status fetches the current state of a session.
func (s *SessionService) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var status SessionStatus
	if err := s.client.call(ctx, http.MethodGet, "/session/status/"+sessionID, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// QRCode fetches the pending QR code for a session awaiting authentication.
func (s *SessionService) QRCode(ctx context.Context, sessionID string) (string, error) {
	if err := validateSessionID(sessionID); err != nil {
		return "", err
	}

	var qr QRCode
	if err := s.client.call(ctx, http.MethodGet, "/session/qr/"+sessionID, nil, &qr); err != nil {
		return "", err
	}
	return qr.QR, nil
}

// Terminate shuts down a session and discards its authentication state.
func (s *SessionService) Terminate(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodGet, "/session/terminate/"+sessionID, nil, nil)
}

// validateSessionID rejects session identifiers the bridge cannot address.
func validateSessionID(sessionID string) error {
	if !ValidateSessionID(sessionID) {
		return &ValidationError{Field: "sessionId", Message: "must be 1-100 characters of letters, digits, '.', '_' or '-'"}
	}
	return nil
}
