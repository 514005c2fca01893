package attendance

type SwipeRequest struct {
	Type string `json:"type" binding:"required"`
}

type AttendanceResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type TotalHoursResponse struct {
	UserID     string  `json:"userId"`
	TotalHours float64 `json:"totalHours"`
}
