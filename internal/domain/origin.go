package domain

// OriginDecision is the gatekeeper's verdict for a browser origin.
// Origin is set only when Granted is true and is echoed back verbatim.
type OriginDecision struct {
	Granted bool
	Origin  string
}

func GrantOrigin(origin string) OriginDecision {
	return OriginDecision{Granted: true, Origin: origin}
}

func DenyOrigin() OriginDecision {
	return OriginDecision{}
}
