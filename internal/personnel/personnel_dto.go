package personnel

type CreatePersonnelRequest struct {
	UserName string `json:"user_name" binding:"required"`
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"required"`
}

type UpdatePersonnelRequest struct {
	FullName string `json:"full_name"`
	// The password is re-hashed on every update, so it must always be sent.
	Password string `json:"password" binding:"required"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type PersonnelResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
