package transport

// CreateLeadRequest contains data for registering a new lead.
type CreateLeadRequest struct {
	ContactID string  `json:"contact_id" validate:"required,min=1,max=128"`
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Phone     string  `json:"phone" validate:"required,min=1,max=50"`
	Source    *string `json:"source,omitempty" validate:"omitempty,max=100"`
}

// RemoveLeadRequest identifies the lead to complete.
type RemoveLeadRequest struct {
	ContactID string `json:"contact_id" validate:"required,min=1,max=128"`
}

// ActiveLeadResponse is one active lead on the dashboard, annotated with
// the business time it has been waiting.
type ActiveLeadResponse struct {
	ContactID      string `json:"contact_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Source         string `json:"source"`
	CreatedAt      int64  `json:"created_at"`
	WaitingMinutes int    `json:"waiting_minutes"`
	Waiting        string `json:"waiting"`
}

// DashboardResponse is the full dashboard payload.
type DashboardResponse struct {
	Active          []ActiveLeadResponse `json:"active"`
	AvgResponse     int                  `json:"avgResponse"`
	TotalLeadsToday int                  `json:"totalLeadsToday"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}
