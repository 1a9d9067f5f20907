package handler

// Form payloads accepted by the pages (form encoding) and the JSON API.
// The msg tag maps each validation rule to its message key.

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email" msg:"required=validation.email_required,email=validation.email_invalid"`
	Password string `form:"password" json:"password" validate:"required,min=6" msg:"required=validation.password_required,min=validation.password_min_login"`
}

type signupForm struct {
	Name                 string `form:"name" json:"name" validate:"required" msg:"required=validation.name_required"`
	Email                string `form:"email" json:"email" validate:"required,email" msg:"required=validation.email_required,email=validation.email_invalid"`
	Password             string `form:"password" json:"password" validate:"required,min=6" msg:"required=validation.password_required,min=validation.password_min_signup"`
	PasswordConfirmation string `form:"passwordConfirmation" json:"passwordConfirmation" validate:"required,eqfield=Password" msg:"required=validation.confirmation_required,eqfield=validation.confirmation_mismatch"`
}

type forgotForm struct {
	Email string `form:"email" json:"email" validate:"required,email" msg:"required=validation.email_required,email=validation.email_invalid"`
}

type resetForm struct {
	Token                   string `form:"token" json:"token" validate:"required" msg:"required=validation.token_required"`
	NewPassword             string `form:"newPassword" json:"newPassword" validate:"required,min=6" msg:"required=validation.password_required,min=validation.password_min_login"`
	NewPasswordConfirmation string `form:"newPasswordConfirmation" json:"newPasswordConfirmation" validate:"required,eqfield=NewPassword" msg:"required=validation.confirmation_required,eqfield=validation.confirmation_mismatch"`
}

type profileNameForm struct {
	Name string `form:"name" json:"name" validate:"required" msg:"required=validation.name_required"`
}

type profileEmailForm struct {
	Email string `form:"email" json:"email" validate:"required,email" msg:"required=validation.email_required_profile,email=validation.email_invalid"`
}

type profilePasswordForm struct {
	NewPassword             string `form:"newPassword" json:"newPassword" validate:"required,min=6" msg:"required=validation.password_required,min=validation.password_min_login"`
	NewPasswordConfirmation string `form:"newPasswordConfirmation" json:"newPasswordConfirmation" validate:"required,eqfield=NewPassword" msg:"required=validation.confirmation_required,eqfield=validation.confirmation_mismatch"`
}
