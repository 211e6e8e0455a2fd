package constants

const (
	MsgInternalError    = "Internal Server Error"
	MsgInvalidLatitude  = "Invalid or missing lat parameter"
	MsgInvalidLongitude = "Invalid or missing lng parameter"
	MsgTooManyRequests  = "Too many requests"
)
