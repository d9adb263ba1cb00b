package model

// UserRole distinguishes learners (take quizzes) from authors (edit questions).
type UserRole string

const (
	RoleLearner UserRole = "learner"
	RoleAuthor  UserRole = "author"
)

// User is a platform account.
type User struct {
	UserID       int64    `json:"user_id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
