package whatsapp

import (
	"context"
	"net/http"
)

// Message type discriminators carried in outbound payloads.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeVideo    = "video"
	MessageTypeAudio    = "audio"
	MessageTypeDocument = "document"
	MessageTypeLocation = "location"
	MessageTypeContact  = "contact"
)

// OutboundMessage is implemented by all message payloads accepted by
// MessageService.Send.
type OutboundMessage interface {
	Validator
	messageType() string
}

// TextMessage is a plain text message to an individual or group chat.
type TextMessage struct {
	To              string   `json:"to"`
	Body            string   `json:"body"`
	Type            string   `json:"type"`
	QuotedMessageID string   `json:"quotedMessageId,omitempty"`
	Mentions        []string `json:"mentions,omitempty"`
}

// NewTextMessage creates a text message addressed to a chat ID.
func NewTextMessage(to, body string) *TextMessage {
	return &TextMessage{To: to, Body: body, Type: MessageTypeText}
}

// Validate implements the Validator interface.
func (m *TextMessage) Validate() error {
	if err := validateChatID(m.To); err != nil {
		return err
	}
	if m.Body == "" {
		return &ValidationError{Field: "body", Message: "must not be empty"}
	}
	return nil
}

func (m *TextMessage) messageType() string { return MessageTypeText }

// MediaMessage is an image, video, audio or document message referenced by
// URL.
type MediaMessage struct {
	To      string `json:"to"`
	Media   string `json:"media"`
	Type    string `json:"type"`
	Caption string `json:"caption,omitempty"`
}

// NewMediaMessage creates a media message of the given type ("image",
// "video", "audio" or "document") referencing a media URL.
func NewMediaMessage(to, mediaURL, mediaType string) *MediaMessage {
	return &MediaMessage{To: to, Media: mediaURL, Type: mediaType}
}

// Validate implements the Validator interface.
func (m *MediaMessage) Validate() error {
	if err := validateChatID(m.To); err != nil {
		return err
	}
	if !ValidateURL(m.Media) {
		return &ValidationError{Field: "media", Message: "must be a valid http or https URL"}
	}
	switch m.Type {
	case MessageTypeImage, MessageTypeVideo, MessageTypeAudio, MessageTypeDocument:
		return nil
	default:
		return &ValidationError{Field: "type", Message: "must be one of image, video, audio, document"}
	}
}

func (m *MediaMessage) messageType() string { return m.Type }

// LocationMessage shares a geographic coordinate.
type LocationMessage struct {
	To          string  `json:"to"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
}

// NewLocationMessage creates a location message for the given coordinates.
func NewLocationMessage(to string, latitude, longitude float64) *LocationMessage {
	return &LocationMessage{To: to, Latitude: latitude, Longitude: longitude, Type: MessageTypeLocation}
}

// Validate implements the Validator interface.
func (m *LocationMessage) Validate() error {
	if err := validateChatID(m.To); err != nil {
		return err
	}
	if m.Latitude < -90 || m.Latitude > 90 {
		return &ValidationError{Field: "latitude", Message: "must be between -90 and 90"}
	}
	if m.Longitude < -180 || m.Longitude > 180 {
		return &ValidationError{Field: "longitude", Message: "must be between -180 and 180"}
	}
	return nil
}

func (m *LocationMessage) messageType() string { return MessageTypeLocation }

// ContactMessage shares another contact's card.
type ContactMessage struct {
	To      string `json:"to"`
	Contact string `json:"contact"`
	Type    string `json:"type"`
}

// NewContactMessage creates a contact card message.
func NewContactMessage(to, contactID string) *ContactMessage {
	return &ContactMessage{To: to, Contact: contactID, Type: MessageTypeContact}
}

// Validate implements the Validator interface.
func (m *ContactMessage) Validate() error {
	if err := validateChatID(m.To); err != nil {
		return err
	}
	if !ValidatePhoneNumber(m.Contact) {
		return &ValidationError{Field: "contact", Message: "must be a valid contact ID like 1234567890@c.us"}
	}
	return nil
}

func (m *ContactMessage) messageType() string { return MessageTypeContact }

// SendResult reports the outcome of a send or forward operation.
type SendResult struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

// messageRef addresses a previously sent message.
type messageRef struct {
	MessageID string `json:"messageId"`
}

// Validate implements the Validator interface.
func (r *messageRef) Validate() error {
	if r.MessageID == "" {
		return &ValidationError{Field: "messageId", Message: "must not be empty"}
	}
	return nil
}

// forwardRequest forwards an existing message to another chat.
type forwardRequest struct {
	MessageID string `json:"messageId"`
	To        string `json:"to"`
}

// Validate implements the Validator interface.
func (r *forwardRequest) Validate() error {
	if r.MessageID == "" {
		return &ValidationError{Field: "messageId", Message: "must not be empty"}
	}
	return validateChatID(r.To)
}

// reactionRequest attaches an emoji reaction to an existing message.
type reactionRequest struct {
	MessageID string `json:"messageId"`
	Reaction  string `json:"reaction"`
}

// Validate implements the Validator interface.
func (r *reactionRequest) Validate() error {
	if r.MessageID == "" {
		return &ValidationError{Field: "messageId", Message: "must not be empty"}
	}
	if r.Reaction == "" {
		return &ValidationError{Field: "reaction", Message: "must not be empty"}
	}
	return nil
}

// MessageService handles communication with the message endpoints.
type MessageService struct {
	client *Client
}

// Send delivers a message through the given session. The payload is
// validated locally before any request is issued.
func (s *MessageService) Send(ctx context.Context, sessionID string, msg OutboundMessage) (*SendResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var result SendResult
	if err := s.client.call(ctx, http.MethodPost, "/client/sendMessage/"+sessionID, msg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a previously sent message for everyone.
func (s *MessageService) Delete(ctx context.Context, sessionID, messageID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/deleteMessage/"+sessionID, &messageRef{MessageID: messageID}, nil)
}

// Forward forwards an existing message to another chat.
func (s *MessageService) Forward(ctx context.Context, sessionID, messageID, to string) (*SendResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var result SendResult
	req := &forwardRequest{MessageID: messageID, To: to}
	if err := s.client.call(ctx, http.MethodPost, "/client/forwardMessage/"+sessionID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// React attaches an emoji reaction to an existing message. An empty reaction
// is rejected; use Delete to remove a message instead.
func (s *MessageService) React(ctx context.Context, sessionID, messageID, reaction string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	req := &reactionRequest{MessageID: messageID, Reaction: reaction}
	return s.client.call(ctx, http.MethodPost, "/client/reactToMessage/"+sessionID, req, nil)
}

// validateChatID accepts both individual (@c.us) and group (@g.us) chat IDs.
func validateChatID(id string) error {
	if ValidatePhoneNumber(id) || ValidateGroupID(id) {
		return nil
	}
	return &ValidationError{Field: "to", Message: "must be a valid chat ID like 1234567890@c.us or 123-456@g.us"}
}
