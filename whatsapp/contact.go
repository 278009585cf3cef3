package whatsapp

import (
	"context"
	"net/http"
)

// Contact represents an address-book entry known to the session's account.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Pushname    string `json:"pushname,omitempty"`
	Number      string `json:"number"`
	IsGroup     bool   `json:"isGroup"`
	IsUser      bool   `json:"isUser"`
	IsMyContact bool   `json:"isMyContact"`
	IsBlocked   bool   `json:"isBlocked"`
}

// contactRef addresses a single contact in request payloads.
type contactRef struct {
	ContactID string `json:"contactId"`
}

// Validate implements the Validator interface.
func (r *contactRef) Validate() error {
	if !ValidatePhoneNumber(r.ContactID) {
		return &ValidationError{Field: "contactId", Message: "must be a valid contact ID like 1234567890@c.us"}
	}
	return nil
}

// ContactService handles communication with the contact endpoints.
type ContactService struct {
	client *Client
}

// List fetches all contacts for the session.
func (s *ContactService) List(ctx context.Context, sessionID string) ([]Contact, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var data struct {
		Contacts []Contact `json:"contacts"`
	}
	if err := s.client.call(ctx, http.MethodGet, "/client/getContacts/"+sessionID, nil, &data); err != nil {
		return nil, err
	}
	return data.Contacts, nil
}

// GetByID fetches a single contact by its contact ID.
func (s *ContactService) GetByID(ctx context.Context, sessionID, contactID string) (*Contact, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var contact Contact
	if err := s.client.call(ctx, http.MethodPost, "/client/getContactById/"+sessionID, &contactRef{ContactID: contactID}, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Block prevents a contact from messaging the session's account.
func (s *ContactService) Block(ctx context.Context, sessionID, contactID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/blockContact/"+sessionID, &contactRef{ContactID: contactID}, nil)
}

// Unblock lifts a previously applied block.
func (s *ContactService) Unblock(ctx context.Context, sessionID, contactID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/unblockContact/"+sessionID, &contactRef{ContactID: contactID}, nil)
}
