package meeting

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/orbita/backend/internal/domain/meeting"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ListMeetingsQuery holds the list filters
type ListMeetingsQuery struct {
	Status      string `form:"status" binding:"omitempty,oneof=all not_started in_progress completed"`
	Type        string `form:"type"`
	Member      string `form:"member"`
	Responsible string `form:"responsible"`
	Search      string `form:"search"`
}

// CreateMeetingRequest creates a meeting; empty fields take the scheduling defaults
type CreateMeetingRequest struct {
	Name          string            `json:"name" binding:"required,max=200"`
	Description   string            `json:"description"`
	Date          string            `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time          string            `json:"time" binding:"omitempty,datetime=15:04"`
	Duration      string            `json:"duration"`
	Type          string            `json:"type"`
	Unit          string            `json:"unit"`
	Department    string            `json:"department"`
	Indic         string            `json:"indic"`
	Plan          string            `json:"plan"`
	Members       []string          `json:"members"`
	Responsible   string            `json:"responsible"`
	Recurrence    string            `json:"recurrence"`
	Active        *bool             `json:"active"`
	UserDirectory map[string]string `json:"userDirectory"`
}

// UpdateMeetingRequest is a partial update; absent fields are left untouched.
// The work-item collections are reconciled by id against the stored ones.
type UpdateMeetingRequest struct {
	Name          *string           `json:"name" binding:"omitempty,max=200"`
	Description   *string           `json:"description"`
	Date          *string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time          *string           `json:"time" binding:"omitempty,datetime=15:04"`
	Duration      *string           `json:"duration"`
	Type          *string           `json:"type"`
	Unit          *string           `json:"unit"`
	Department    *string           `json:"department"`
	Indic         *string           `json:"indic"`
	Plan          *string           `json:"plan"`
	Members       []string          `json:"members"`
	Responsible   *string           `json:"responsible"`
	Recurrence    *string           `json:"recurrence"`
	Active        *bool             `json:"active"`
	UserDirectory map[string]string `json:"userDirectory"`

	Highlights  []meeting.Highlight  `json:"highlights"`
	Pautas      []meeting.Pauta      `json:"pautas"`
	Tasks       []meeting.Task       `json:"tasks"`
	Notes       []meeting.Note       `json:"notes"`
	Attachments []meeting.Attachment `json:"attachments"`
}

// StartMeetingRequest starts or resumes a meeting
type StartMeetingRequest struct {
	PresentMembers []string          `json:"presentMembers"`
	UserDirectory  map[string]string `json:"userDirectory"`
}

// CompleteMeetingRequest closes a meeting with the client-measured duration
type CompleteMeetingRequest struct {
	DurationSeconds *Seconds `json:"durationSeconds"`
}

func (r CompleteMeetingRequest) duration() *float64 {
	if r.DurationSeconds == nil {
		return nil
	}
	d := float64(*r.DurationSeconds)
	return &d
}

// Seconds is a duration in seconds sent as a JSON number or a numeric string.
// A string that is not a number decodes to NaN and is ignored on completion.
type Seconds float64

// UnmarshalJSON implements json.Unmarshaler
func (s *Seconds) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Seconds(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.New("durationSeconds must be a number")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		v = math.NaN()
	}
	*s = Seconds(v)
	return nil
}

// CreateItemRequest creates a highlight, pauta, task or note
type CreateItemRequest struct {
	Text        string `json:"text" binding:"required,max=2000"`
	Description string `json:"description" binding:"max=4000"`
}

// UpdateItemRequest patches an item; absent fields are left untouched
type UpdateItemRequest struct {
	Text        *string `json:"text" binding:"omitempty,max=2000"`
	Description *string `json:"description" binding:"omitempty,max=4000"`
	Checked     *bool   `json:"checked"`
}

// CreateAttachmentRequest uploads a file as a base64 data URL
type CreateAttachmentRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type"`
	Data string `json:"data" binding:"required"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// CompleteResponse is the completed meeting plus the delivery outcome
type CompleteResponse struct {
	*meeting.Meeting
	EmailSent  bool   `json:"emailSent"`
	EmailError string `json:"emailError,omitempty"`
}

// ToCompleteResponse flattens a completion result
func ToCompleteResponse(r *meeting.CompleteResult) CompleteResponse {
	return CompleteResponse{
		Meeting:    r.Meeting,
		EmailSent:  r.Notification.EmailSent,
		EmailError: r.Notification.EmailError,
	}
}

// AttachmentDownload points at the content of an attachment.
// Offloaded files get a presigned URL; inline files return their data URL.
type AttachmentDownload struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	DataURL   string     `json:"dataUrl,omitempty"`
}

func (r UpdateItemRequest) patch() meeting.ItemPatch {
	return meeting.ItemPatch{Text: r.Text, Description: r.Description, Checked: r.Checked}
}
