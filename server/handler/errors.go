package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/provider"
	Logger "github.com/plateful/plateful/utils/log"
)

// Kind classifies a business-logic failure. Handler bodies return *Error
// values and respondError is the single place translating a kind into a
// transport status code, so the taxonomy is enforced centrally instead of
// being duplicated per route.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUpstream
	KindInternal
)

// Error is a classified failure. Message is client-visible; Err is the
// underlying cause, logged server-side and never leaked.
type Error struct {
	Kind    Kind
	Status  int // explicit status for upstream pass-through, 0 otherwise
	Message string
	Details interface{} // opaque provider payload, set for upstream failures only
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func errValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func errAuthentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func errAuthorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func errNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func errConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func errInternal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// errUpstream maps a provider failure to the transport shape: the provider's
// status code when it responded, 500 for transport-level failures, with the
// raw payload carried as opaque details.
func errUpstream(msg string, cause error) *Error {
	var upstream *provider.UpstreamError
	if errors.As(cause, &upstream) {
		var details interface{} = upstream.Body
		if json.Valid([]byte(upstream.Body)) {
			details = json.RawMessage(upstream.Body)
		}
		return &Error{Kind: KindUpstream, Status: upstream.StatusCode, Message: msg, Details: details, Err: cause}
	}
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: msg, Details: cause.Error(), Err: cause}
}

// respondError is the single adapter from the error taxonomy to HTTP. Every
// response body is a JSON object with at least an "error" field; internal
// causes are logged, not returned.
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = errInternal("Something went wrong", err)
	}

	var status int
	switch appErr.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindAuthentication:
		status = http.StatusUnauthorized
	case KindAuthorization:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	case KindUpstream:
		status = appErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
	default:
		status = http.StatusInternalServerError
	}

	if appErr.Err != nil {
		Logger.Log.WithField("path", c.FullPath()).Error(appErr.Message, ": ", appErr.Err)
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}
