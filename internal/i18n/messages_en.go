package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Identity errors
	message.SetString(lang, KeyErrEmailInUse, "A user with this e-mail already exists.")
	message.SetString(lang, KeyErrWrongPassword, "Wrong password.")
	message.SetString(lang, KeyErrUserNotFound, "User not registered.")
	message.SetString(lang, KeyErrPopupClosed, "Popup closed by the user")
	message.SetString(lang, KeyErrRecentLogin, "Your last sign-in is too old for this operation. Please sign out, sign in again and retry")
	message.SetString(lang, KeyErrNetwork, "No internet connection")
	message.SetString(lang, KeyErrGeneric, "Something went wrong. Please try again later.")
	message.SetString(lang, KeyErrGoogleHint, "The password is incorrect. You can use your Google account to sign in.")
	message.SetString(lang, KeyErrBadCredentials, "Invalid credentials")
	message.SetString(lang, KeyErrPasswordsDiffer, "Passwords do not match")
	message.SetString(lang, KeyErrMissingDBUser, "Could not find the user in the database")
	message.SetString(lang, KeyErrUnexpected, "An error happened. Please try again later.")

	// Validation
	message.SetString(lang, KeyValEmailInvalid, "Invalid e-mail")
	message.SetString(lang, KeyValEmailRequired, "E-mail is required")
	message.SetString(lang, KeyValEmailRequiredProfile, "E-mail is required")
	message.SetString(lang, KeyValPasswordRequired, "Password is required")
	message.SetString(lang, KeyValPasswordMinLogin, "Password must have at least 6 characters")
	message.SetString(lang, KeyValPasswordMinSignup, "Password must have more than 6 characters")
	message.SetString(lang, KeyValNameRequired, "Name is required")
	message.SetString(lang, KeyValConfirmRequired, "Password confirmation is required")
	message.SetString(lang, KeyValConfirmMismatch, "Passwords do not match")
	message.SetString(lang, KeyValTokenRequired, "Invalid reset link")
	message.SetString(lang, KeyValPhotoRequired, "Choose an image")
	message.SetString(lang, KeyValInvalid, "Invalid field")

	// Notifications
	message.SetString(lang, KeyToastLoginTitle, "Signed in successfully!")
	message.SetString(lang, KeyToastLoginBody, "Welcome back %s")
	message.SetString(lang, KeyToastSignupTitle, "Account created successfully!")
	message.SetString(lang, KeyToastSignupBody, "Welcome %s")
	message.SetString(lang, KeyToastResetSentTitle, "E-mail sent")
	message.SetString(lang, KeyToastResetSentBody, "Check your inbox to change your password.")
	message.SetString(lang, KeyToastResetDone, "Password reset successfully")
	message.SetString(lang, KeyToastNameUpdated, "Name updated")
	message.SetString(lang, KeyToastEmailUpdated, "E-mail updated")
	message.SetString(lang, KeyToastPasswordUpdated, "Password updated")
	message.SetString(lang, KeyToastPhotoUpdated, "Profile photo updated")
	message.SetString(lang, KeyToastPhotoFailed, "Could not update profile photo")
	message.SetString(lang, KeyToastPhotoFailedBody, "Please try again later")
	message.SetString(lang, KeyToastPhotoDeleted, "Profile photo deleted")
	message.SetString(lang, KeyToastPhotoDeleteError, "Could not delete profile photo")
	message.SetString(lang, KeyToastLogout, "Signed out successfully!")
	message.SetString(lang, KeyToastError, "Error")

	// Pages
	message.SetString(lang, KeyPageLogin, "Sign in")
	message.SetString(lang, KeyPageSignup, "Create account")
	message.SetString(lang, KeyPageForgot, "Forgot password")
	message.SetString(lang, KeyPageReset, "Reset password")
	message.SetString(lang, KeyPageDashboard, "Dashboard")
	message.SetString(lang, KeyPageProfile, "Profile")
	message.SetString(lang, KeyLabelName, "Name")
	message.SetString(lang, KeyLabelEmail, "E-mail")
	message.SetString(lang, KeyLabelPassword, "Password")
	message.SetString(lang, KeyLabelConfirm, "Password confirmation")
	message.SetString(lang, KeyLabelNewPass, "New password")
	message.SetString(lang, KeyLabelPhoto, "Profile photo")
	message.SetString(lang, KeyActionLogin, "Sign in")
	message.SetString(lang, KeyActionGoogle, "Sign in with Google")
	message.SetString(lang, KeyActionSignup, "Sign up")
	message.SetString(lang, KeyActionForgot, "Forgot your password?")
	message.SetString(lang, KeyActionSend, "Send")
	message.SetString(lang, KeyActionSave, "Save")
	message.SetString(lang, KeyActionUpload, "Upload photo")
	message.SetString(lang, KeyActionDelete, "Delete photo")
	message.SetString(lang, KeyActionLogout, "Sign out")
	message.SetString(lang, KeyActionTheme, "Toggle theme")
	message.SetString(lang, KeyDashboardHello, "Hello, %s")
	message.SetString(lang, KeyDashboardRole, "Access role: %s")
	message.SetString(lang, KeyDashboardNoPts, "No points recorded yet.")
	message.SetString(lang, KeyResetMailSubj, "Reset your password")
	message.SetString(lang, KeyResetMailBody, "To reset your password open: %s")
}
