package i18n

// Message keys shared by the services, handlers and templates.
const (
	KeyErrEmailInUse      = "auth.error.email_in_use"
	KeyErrWrongPassword   = "auth.error.wrong_password"
	KeyErrUserNotFound    = "auth.error.user_not_found"
	KeyErrPopupClosed     = "auth.error.popup_closed"
	KeyErrRecentLogin     = "auth.error.requires_recent_login"
	KeyErrNetwork         = "auth.error.network"
	KeyErrGeneric         = "auth.error.generic"
	KeyErrGoogleHint      = "auth.error.google_hint"
	KeyErrBadCredentials  = "auth.error.bad_credentials"
	KeyErrPasswordsDiffer = "auth.error.passwords_differ"
	KeyErrMissingDBUser   = "auth.error.missing_db_user"
	KeyErrUnexpected      = "auth.error.unexpected"

	KeyValEmailInvalid         = "validation.email_invalid"
	KeyValEmailRequired        = "validation.email_required"
	KeyValEmailRequiredProfile = "validation.email_required_profile"
	KeyValPasswordRequired     = "validation.password_required"
	KeyValPasswordMinLogin     = "validation.password_min_login"
	KeyValPasswordMinSignup    = "validation.password_min_signup"
	KeyValNameRequired         = "validation.name_required"
	KeyValConfirmRequired      = "validation.confirmation_required"
	KeyValConfirmMismatch      = "validation.confirmation_mismatch"
	KeyValTokenRequired        = "validation.token_required"
	KeyValPhotoRequired        = "validation.photo_required"
	KeyValInvalid              = "validation.invalid"

	KeyToastLoginTitle       = "toast.login.title"
	KeyToastLoginBody        = "toast.login.body"
	KeyToastSignupTitle      = "toast.signup.title"
	KeyToastSignupBody       = "toast.signup.body"
	KeyToastResetSentTitle   = "toast.reset_sent.title"
	KeyToastResetSentBody    = "toast.reset_sent.body"
	KeyToastResetDone        = "toast.reset_done"
	KeyToastNameUpdated      = "toast.name_updated"
	KeyToastEmailUpdated     = "toast.email_updated"
	KeyToastPasswordUpdated  = "toast.password_updated"
	KeyToastPhotoUpdated     = "toast.photo_updated"
	KeyToastPhotoFailed      = "toast.photo_failed"
	KeyToastPhotoFailedBody  = "toast.photo_failed.body"
	KeyToastPhotoDeleted     = "toast.photo_deleted"
	KeyToastPhotoDeleteError = "toast.photo_delete_failed"
	KeyToastLogout           = "toast.logout"
	KeyToastError            = "toast.error"

	KeyPageLogin      = "page.login"
	KeyPageSignup     = "page.signup"
	KeyPageForgot     = "page.forgot"
	KeyPageReset      = "page.reset"
	KeyPageDashboard  = "page.dashboard"
	KeyPageProfile    = "page.profile"
	KeyLabelName      = "label.name"
	KeyLabelEmail     = "label.email"
	KeyLabelPassword  = "label.password"
	KeyLabelConfirm   = "label.confirmation"
	KeyLabelNewPass   = "label.new_password"
	KeyLabelPhoto     = "label.photo"
	KeyActionLogin    = "action.login"
	KeyActionGoogle   = "action.google"
	KeyActionSignup   = "action.signup"
	KeyActionForgot   = "action.forgot"
	KeyActionSend     = "action.send"
	KeyActionSave     = "action.save"
	KeyActionUpload   = "action.upload"
	KeyActionDelete   = "action.delete_photo"
	KeyActionLogout   = "action.logout"
	KeyActionTheme    = "action.theme"
	KeyDashboardHello = "dashboard.hello"
	KeyDashboardRole  = "dashboard.role"
	KeyDashboardNoPts = "dashboard.no_points"
	KeyResetMailBody  = "mail.reset.body"
	KeyResetMailSubj  = "mail.reset.subject"
)
