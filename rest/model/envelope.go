package model

import (
	"github.com/campdirector/campdirector/db"
	"github.com/evergreen-ci/utility"
)

// Envelope is the uniform wrapper for every successful response:
// lists carry a count (and pagination when the endpoint supports the
// advanced query parameters), single reads and writes carry the
// entity, deletions carry an empty object.
type Envelope struct {
	Success    bool           `json:"success"`
	Count      *int           `json:"count,omitempty"`
	Pagination *db.Pagination `json:"pagination,omitempty"`
	Data       any            `json:"data"`
}

// ErrorEnvelope is the uniform wrapper for every error response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewDataEnvelope wraps a single entity.
func NewDataEnvelope(data any) *Envelope {
	return &Envelope{Success: true, Data: data}
}

// NewListEnvelope wraps a result set with its count.
func NewListEnvelope(data any, count int) *Envelope {
	return &Envelope{
		Success: true,
		Count:   utility.ToIntPtr(count),
		Data:    data,
	}
}

// NewPagedEnvelope wraps a result set with its count and the
// pagination descriptors computed by the query translator.
func NewPagedEnvelope(data any, count int, pages db.Pagination) *Envelope {
	return &Envelope{
		Success:    true,
		Count:      utility.ToIntPtr(count),
		Pagination: &pages,
		Data:       data,
	}
}

// NewDeleteEnvelope is the response to a successful deletion.
func NewDeleteEnvelope() *Envelope {
	return &Envelope{Success: true, Data: struct{}{}}
}

// NewErrorEnvelope wraps a user-visible failure message.
func NewErrorEnvelope(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Success: false, Error: msg}
}
