package middleware

const (
	errTokenExpired = "Token has expired."
	errTokenInvalid = "Token is invalid."
	errRateLimited  = "Too many requests. Try again after the window resets."
	errDeprecated   = "A new API version is available. Use the new version."
)
