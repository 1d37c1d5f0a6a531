package submission

import (
	"time"
)

// Status of a booking form
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	// StatusError is part of the state set but no transition leads to it.
	StatusError Status = "error"
)

// FormData holds the text fields of the booking form
type FormData struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	BookingDate string `json:"booking_date" validate:"required,isodate"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Purpose     string `json:"purpose" validate:"required"`
}

// Preview is a stored copy of an attachment, held until released
type Preview struct {
	Key      string `json:"-"`
	URL      string `json:"url"`
	ThumbKey string `json:"-"`
	ThumbURL string `json:"thumbnail_url,omitempty"`
}

// Attachment is the student id card image
type Attachment struct {
	FileName    string   `json:"file_name"`
	ContentType string   `json:"content_type"`
	Size        int64    `json:"size"`
	Preview     *Preview `json:"preview,omitempty"`
}

// FileUpload is an incoming file before acceptance
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// Snapshot is a point-in-time copy of a form
type Snapshot struct {
	ID         string      `json:"id"`
	Status     Status      `json:"status"`
	Data       FormData    `json:"data"`
	Attachment *Attachment `json:"student_id_card"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Entry is what gets journaled when a submission completes
type Entry struct {
	FormID      string      `json:"form_id"`
	RequestID   string      `json:"request_id,omitempty"`
	Data        FormData    `json:"data"`
	Attachment  *Attachment `json:"student_id_card,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
	CompletedAt time.Time   `json:"completed_at"`
}
