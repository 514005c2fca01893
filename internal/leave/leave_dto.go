package leave

// ApplyLeaveRequest carries the employee's application. Status is accepted on
// the wire for compatibility and ignored.
type ApplyLeaveRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

type UpdateLeaveStatusRequest struct {
	Status   string  `json:"status"`
	Feedback *string `json:"feedback"`
}

type LeaveUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LeaveResponse struct {
	ID        string     `json:"id"`
	User      *LeaveUser `json:"user,omitempty"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Reason    string     `json:"reason"`
	Status    string     `json:"status"`
	Feedback  *string    `json:"feedback,omitempty"`
	CreatedAt string     `json:"createdAt"`
}
