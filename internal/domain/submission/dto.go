package submission

// UpdateFormRequest sets the fields that are present; absent fields are kept
type UpdateFormRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	BookingDate *string `json:"booking_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Purpose     *string `json:"purpose"`
}

func (r *UpdateFormRequest) apply(d *FormData) {
	if r.FullName != nil {
		d.FullName = *r.FullName
	}
	if r.Email != nil {
		d.Email = *r.Email
	}
	if r.BookingDate != nil {
		d.BookingDate = *r.BookingDate
	}
	if r.StartTime != nil {
		d.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		d.EndTime = *r.EndTime
	}
	if r.Purpose != nil {
		d.Purpose = *r.Purpose
	}
}

// Event is a websocket message carrying a form snapshot
type Event struct {
	Type string   `json:"type"`
	Form Snapshot `json:"form"`
}

const eventFormState = "form_state"
