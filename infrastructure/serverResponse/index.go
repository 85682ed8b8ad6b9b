package server_response

type responder interface {
	Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, responseCode *uint, requestID *string)
}

var Responder responder = ginResponder{}
