package auth

var (
	MsgEmailRegistered     = "Email is already registered."
	MsgInvalidCredentials  = "Invalid email or password."
	MsgUserDisabled        = "Your account is disabled."
	MsgVerificationFailed  = "The verification link is invalid or has expired."
	MsgVerificationMailErr = "Could not send the verification email, please try again later."
	MsgInternalError       = "Something went wrong, please try again later."
)
