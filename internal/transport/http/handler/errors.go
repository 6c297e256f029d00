package handler

const (
	errInternalServer     = "Internal server error"
	errUnregisteredDomain = "Unregistered domain. Register the domain first."
	errNoResults          = "No results found."
	errTokenInvalid       = "Token is invalid."
	msgTokenIssued        = "Token issued."
)
