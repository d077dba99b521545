package dto

// SignupForm is the body for POST /submitUser. Constraint checking happens in
// internal/validate so failure messages match the page contract.
//
// The login form has no struct here: /loggingin reads the raw form because the
// email key must be screened for structured-operator names before any binding.
type SignupForm struct {
	Email    string `form:"email"`
	Name     string `form:"name"`
	Password string `form:"password"`
}
