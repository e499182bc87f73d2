package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/director74/saga-coordinator/internal/httpclient"
)

// validationField — одна запись из payload ошибки валидации нижестоящего сервиса.
type validationField struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Classify walks err's cause chain for the innermost *httpclient.StatusError and maps
// it onto the coordinator's error taxonomy, selectively extracting only the
// validation fields relevant to the saga that produced it.
func Classify(err error, relevantFields []string) *CoordinatorError {
	if err == nil {
		return nil
	}

	var existing *CoordinatorError
	if errors.As(err, &existing) {
		return existing
	}

	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return NewInternal(err)
	}

	if se.IsNetworkFailure() {
		return New(KindHTTPClient, fmt.Sprintf("сбой вызова %s", se.Service), err)
	}

	switch se.Status {
	case http.StatusForbidden:
		return NewForbidden(envelopeMessage(se), err)
	case http.StatusNotFound:
		return New(KindNotFound, envelopeMessage(se), err)
	case http.StatusBadRequest:
		if se.Envelope != nil && len(se.Envelope.Payload) > 0 {
			fields := extractFields(se.Envelope.Payload, relevantFields)
			return NewValidation(envelopeMessage(se), fields, err)
		}
		return New(KindUnknown, envelopeMessage(se), err)
	default:
		return New(KindUnknown, envelopeMessage(se), err)
	}
}

func envelopeMessage(se *httpclient.StatusError) string {
	if se.Envelope != nil && se.Envelope.Description != "" {
		return se.Envelope.Description
	}
	return se.Error()
}

// extractFields parses a payload shaped {field: [{code, message}, ...]} and keeps
// only the fields named in relevant, forwarding just the first error per field.
func extractFields(payload json.RawMessage, relevant []string) map[string][]string {
	var raw map[string][]validationField
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}

	wanted := make(map[string]bool, len(relevant))
	for _, f := range relevant {
		wanted[f] = true
	}

	out := make(map[string][]string)
	for field, entries := range raw {
		if !wanted[field] || len(entries) == 0 {
			continue
		}
		out[field] = []string{entries[0].Message}
		if entries[0].Message == "" {
			out[field] = []string{entries[0].Code}
		}
	}
	return out
}
