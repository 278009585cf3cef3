package whatsapp

import (
	"context"
	"net/http"
)

// Chat represents a conversation visible to the session's account.
type Chat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsGroup     bool   `json:"isGroup"`
	IsReadOnly  bool   `json:"isReadOnly"`
	UnreadCount int    `json:"unreadCount"`
	Timestamp   int64  `json:"timestamp"`
	Archived    bool   `json:"archived"`
	Pinned      bool   `json:"pinned"`
	IsMuted     bool   `json:"isMuted"`
}

// chatRef addresses a single chat in request payloads.
type chatRef struct {
	ChatID string `json:"chatId"`
}

// Validate implements the Validator interface.
func (r *chatRef) Validate() error {
	if ValidatePhoneNumber(r.ChatID) || ValidateGroupID(r.ChatID) {
		return nil
	}
	return &ValidationError{Field: "chatId", Message: "must be a valid chat ID"}
}

// ChatService handles communication with the chat endpoints.
type ChatService struct {
	client *Client
}

// List fetches all chats for the session.
func (s *ChatService) List(ctx context.Context, sessionID string) ([]Chat, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var data struct {
		Chats []Chat `json:"chats"`
	}
	if err := s.client.call(ctx, http.MethodGet, "/client/getChats/"+sessionID, nil, &data); err != nil {
		return nil, err
	}
	return data.Chats, nil
}

// GetByID fetches a single chat by its chat ID.
func (s *ChatService) GetByID(ctx context.Context, sessionID, chatID string) (*Chat, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var chat Chat
	if err := s.client.call(ctx, http.MethodPost, "/client/getChatById/"+sessionID, &chatRef{ChatID: chatID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Archive moves a chat into the archive.
func (s *ChatService) Archive(ctx context.Context, sessionID, chatID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/archiveChat/"+sessionID, &chatRef{ChatID: chatID}, nil)
}

// Unarchive restores a chat from the archive.
func (s *ChatService) Unarchive(ctx context.Context, sessionID, chatID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/unarchiveChat/"+sessionID, &chatRef{ChatID: chatID}, nil)
}
