package user

type ManagerRef struct {
	ID string `json:"id"`
}

type RegisterUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password"`
	Role     string      `json:"role" binding:"required"`
	Manager  *ManagerRef `json:"manager"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Manager   *UserSummary `json:"manager,omitempty"`
	CreatedAt string       `json:"createdAt"`
}
