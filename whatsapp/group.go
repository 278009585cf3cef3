package whatsapp

import (
	"context"
	"fmt"
	"net/http"
)

// GroupParticipant represents a member of a group chat.
type GroupParticipant struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
}

// GroupChat represents a group conversation with its membership.
type GroupChat struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Participants []GroupParticipant `json:"participants"`
	Admins       []string           `json:"admins"`
	InviteCode   string             `json:"inviteCode,omitempty"`
}

// CreateGroupRequest describes a group to be created.
type CreateGroupRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// Validate implements the Validator interface.
func (r *CreateGroupRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	return validateParticipants(r.Participants)
}

// GroupActionRequest targets an existing group with a participant list, used
// for adding and removing members.
type GroupActionRequest struct {
	GroupID      string   `json:"groupId"`
	Participants []string `json:"participants"`
}

// Validate implements the Validator interface.
func (r *GroupActionRequest) Validate() error {
	if !ValidateGroupID(r.GroupID) {
		return &ValidationError{Field: "groupId", Message: "must be a valid group ID like 123456789-987654321@g.us"}
	}
	return validateParticipants(r.Participants)
}

// GroupCreateResult reports the outcome of a group creation.
type GroupCreateResult struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

// GroupService handles communication with the group endpoints.
type GroupService struct {
	client *Client
}

// Create creates a new group with the given name and initial participants.
func (s *GroupService) Create(ctx context.Context, sessionID string, req *CreateGroupRequest) (*GroupCreateResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var result GroupCreateResult
	if err := s.client.call(ctx, http.MethodPost, "/client/createGroup/"+sessionID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID fetches a group chat with its membership and admin lists.
func (s *GroupService) GetByID(ctx context.Context, sessionID, groupID string) (*GroupChat, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if !ValidateGroupID(groupID) {
		return nil, &ValidationError{Field: "groupId", Message: "must be a valid group ID like 123456789-987654321@g.us"}
	}

	var group GroupChat
	if err := s.client.call(ctx, http.MethodPost, "/client/getGroupById/"+sessionID, &chatRef{ChatID: groupID}, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// AddParticipants adds the listed contacts to an existing group.
func (s *GroupService) AddParticipants(ctx context.Context, sessionID string, req *GroupActionRequest) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/addGroupParticipants/"+sessionID, req, nil)
}

// RemoveParticipants removes the listed contacts from an existing group.
func (s *GroupService) RemoveParticipants(ctx context.Context, sessionID string, req *GroupActionRequest) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.client.call(ctx, http.MethodPost, "/client/removeGroupParticipants/"+sessionID, req, nil)
}

func validateParticipants(participants []string) error {
	if len(participants) == 0 {
		return &ValidationError{Field: "participants", Message: "must not be empty"}
	}
	for i, p := range participants {
		if !ValidatePhoneNumber(p) {
			return &ValidationError{
				Field:   fmt.Sprintf("participants[%d]", i),
				Message: "must be a valid contact ID like 1234567890@c.us",
			}
		}
	}
	return nil
}
