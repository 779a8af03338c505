package upstream

import (
	"encoding/json"
	"net/http"
)

// Response is a fully read upstream answer. Body is either empty or valid JSON.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Empty reports whether the upstream sent no body.
func (r *Response) Empty() bool {
	return len(r.Body) == 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

func (r *Response) errorBody() errorBody {
	var eb errorBody
	// Bodies that are not objects, or carry non-string fields, yield nothing.
	_ = json.Unmarshal(r.Body, &eb)
	return eb
}

// Message returns the first of "message", "error" and "detail" that the body
// carries.
func (r *Response) Message() string {
	eb := r.errorBody()
	switch {
	case eb.Message != "":
		return eb.Message
	case eb.Error != "":
		return eb.Error
	default:
		return eb.Detail
	}
}

// Detail returns the body's "error" field.
func (r *Response) Detail() string {
	return r.errorBody().Error
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// AsError describes a failed response. fallback is used when the upstream
// gave no message.
func (r *Response) AsError(resource, fallback string) *Error {
	message := r.Message()
	if message == "" {
		message = fallback
	}

	return &Error{
		Status:   r.Status,
		Resource: resource,
		Message:  message,
		Detail:   r.Detail(),
	}
}
