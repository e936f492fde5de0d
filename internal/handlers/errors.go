package handlers

var (
	MsgTooManyAttempts = "Too many attempts, please try again later."
	MsgInvalidCaptcha  = "Captcha verification failed, please try again."
	MsgSignedOut       = "You have been signed out."
)
