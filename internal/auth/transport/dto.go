package transport

// LoginRequest is the query parameters for the login route. The CRM treats
// the email as the username, so only presence is enforced here.
type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}
