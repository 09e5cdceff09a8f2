package models

// ConflictResponse is the JSON body returned with HTTP 409 when a proposed
// consumer collides with an existing record on one of its unique natural
// keys. Field names the offending attribute ("national_id" or "email") so
// the front end can highlight the exact input.
type ConflictResponse struct {
	Field string `json:"field"`
}

// ErrorResponse is the generic JSON error body for non-conflict failures.
// Message is a client-safe description: internal detail (driver errors,
// retry counters) never appears here.
type ErrorResponse struct {
	Message string `json:"message"`
}
