package profile

// UpdateProfileRequest replaces every field of the profile, blanks included.
type UpdateProfileRequest struct {
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	DateOfBirth      string `json:"dateOfBirth"`
	JoinDate         string `json:"joinDate"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
}

type ProfileResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	DateOfBirth      string `json:"dateOfBirth"`
	JoinDate         string `json:"joinDate"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
}
