package types

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body of every /api/chat reply, success or not.
// Places is never nil so the frontend always receives an array.
type ChatResponse struct {
	Reply  string  `json:"reply"`
	Places []Place `json:"places"`
}

// PropertySearchRequest is the body of POST /api/properties.
type PropertySearchRequest struct {
	Location string `json:"location"`
	Type     string `json:"type,omitempty"`
}

// PropertySearchResponse is the body of every /api/properties reply.
// Exactly one of Message or Error is set; Properties is never nil.
type PropertySearchResponse struct {
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	Address     string            `json:"address,omitempty"`
	Coordinates *LatLng           `json:"coordinates,omitempty"`
	Properties  []PropertyListing `json:"properties"`
}
