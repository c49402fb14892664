package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope shape changes.
const envelopeVersion = 1

// Envelope is the uniform wrapper around every API response body.
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps huma outputs in the response envelope. Error
// payloads keep their code and details alongside the message.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}, nil
	}

	if strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5") {
		msg := "request failed"
		if err, ok := v.(error); ok {
			msg = err.Error()
		}
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   msg,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
