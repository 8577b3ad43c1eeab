// Package weberr decorates errors with the HTTP response they should
// produce. Handlers wrap an error with a body and status; the errors
// middleware unwraps them at the top of the chain and writes the reply,
// so the wire shape is decided in one place.
package weberr

// Opt is one decoration applied to an error by Wrap.
type Opt func(error) error

// Wrap applies the given options to err in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse attaches the body and status code to send for this error.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured context for the logger middleware.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
