package response

import (
	"encoding/json"
	"net/http"
	"parking/shared/constant"
	"parking/shared/failure"
	"parking/shared/logger"
)

// Data wraps a successful payload.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every failed request. Redirect names the dashboard the caller belongs on.
type Error struct {
	Error    *string `json:"error,omitempty"`
	Redirect *string `json:"redirect,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(w http.ResponseWriter, code int, message string) {
	write(w, code, Message{Message: &message})
}

func WithJSON(w http.ResponseWriter, code int, payload any) {
	write(w, code, Data[any]{Data: &payload})
}

// WithError renders err with the status of its failure code, 500 when it has none.
func WithError(w http.ResponseWriter, err error) {
	write(w, failure.GetCode(err), errorBody(err, ""))
}

func WithErrorRedirect(w http.ResponseWriter, err error, redirect string) {
	write(w, failure.GetCode(err), errorBody(err, redirect))
}

func WithRequestLimitExceeded(w http.ResponseWriter) {
	WithMessage(w, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithHealthy(w http.ResponseWriter) {
	WithMessage(w, http.StatusOK, constant.ResponseHealthy)
}

func errorBody(err error, redirect string) Error {
	msg := err.Error()
	body := Error{Error: &msg}

	if redirect != "" {
		body.Redirect = &redirect
	}

	return body
}

func write(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(code)

	if _, err = w.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
