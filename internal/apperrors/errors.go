// Package apperrors определяет таксономию ошибок координатора саг и их HTTP-отображение.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/director74/saga-coordinator/internal/logging"
	"github.com/director74/saga-coordinator/internal/metrics"
)

// Kind — категория ошибки координатора.
type Kind int

const (
	KindUnknown Kind = iota
	KindParse
	KindValidation
	KindForbidden
	KindNotFound
	KindRPCClient
	KindHTTPClient
	KindInternal
)

func (k Kind) httpStatus() int {
	switch k {
	case KindParse, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRPCClient:
		return "rpc_client"
	case KindHTTPClient:
		return "http_client"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// CoordinatorError — типизированная ошибка, несущая HTTP-статус и, при Validation,
// выборочные поля, извлечённые из ответа нижестоящего сервиса.
type CoordinatorError struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *CoordinatorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CoordinatorError) Unwrap() error { return e.Err }

func New(kind Kind, message string, cause error) *CoordinatorError {
	return &CoordinatorError{Kind: kind, Message: message, Err: cause}
}

func NewValidation(message string, fields map[string][]string, cause error) *CoordinatorError {
	return &CoordinatorError{Kind: KindValidation, Message: message, Fields: fields, Err: cause}
}

func NewNotFound(resource string, cause error) *CoordinatorError {
	return New(KindNotFound, fmt.Sprintf("%s не найден", resource), cause)
}

func NewForbidden(reason string, cause error) *CoordinatorError {
	return New(KindForbidden, reason, cause)
}

func NewParse(reason string, cause error) *CoordinatorError {
	return New(KindParse, reason, cause)
}

func NewInternal(cause error) *CoordinatorError {
	return New(KindInternal, "внутренняя ошибка координатора", cause)
}

// HTTPResponse — тело JSON-ответа об ошибке.
type HTTPResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ToHTTPResponse преобразует произвольную ошибку в HTTP-статус и тело ответа.
// Любая ошибка, отображённая в 500, дополнительно уходит в лог уровня error и
// в счётчик saga_failures_total с меткой kind — в том числе ответы 5xx и сбои
// транспорта нижестоящих сервисов, а не только ошибки вне таксономии.
func ToHTTPResponse(err error) (int, HTTPResponse) {
	var ce *CoordinatorError
	if errors.As(err, &ce) {
		status := ce.Kind.httpStatus()
		if status == http.StatusInternalServerError {
			reportFailure(ce.Kind, err)
		}
		return status, HTTPResponse{Error: ce.Message, Fields: ce.Fields}
	}

	reportFailure(KindInternal, err)
	return http.StatusInternalServerError, HTTPResponse{Error: "внутренняя ошибка координатора"}
}

func reportFailure(kind Kind, err error) {
	metrics.SagaFailures.WithLabelValues(kind.String()).Inc()
	logging.Error().Err(err).Str("kind", kind.String()).Msg("ошибка координатора отображена в HTTP 500")
}

// AppendPrefix оборачивает err с текстовым префиксом, сохраняя цепочку Unwrap.
func AppendPrefix(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

// ErrorGroup собирает несколько ошибок из независимых операций завершения работы.
type ErrorGroup struct {
	errs []error
}

func NewErrorGroup() *ErrorGroup { return &ErrorGroup{} }

func (g *ErrorGroup) Add(err error) {
	if err != nil {
		g.errs = append(g.errs, err)
	}
}

func (g *ErrorGroup) HasErrors() bool { return len(g.errs) > 0 }

func (g *ErrorGroup) Error() string {
	msg := ""
	for i, err := range g.errs {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}
