package dto

// LoginForm is the posted sign-in form.
type LoginForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

// RegisterForm is the posted sign-up form.
type RegisterForm struct {
	Username string `schema:"username"`
	Email    string `schema:"email"`
	Password string `schema:"password"`
	Role     string `schema:"role"`
}
