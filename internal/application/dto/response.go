package dto

// HelloResponse is the body of GET /hello.
type HelloResponse struct {
	Message string `json:"message"`

	// APIVersion is read from the X-API-Version response header.
	APIVersion string `json:"-"`
}

// ErrorResponse is the body of every non-2xx answer of the users API.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}
