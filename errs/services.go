package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External collaborator errors: the email provider, the object store, and
// plain network failures from the API client.
var (
	ErrEmailSend       = errors.New("email send failed")
	ErrStorageUpload   = errors.New("storage upload failed")
	ErrStorageList     = errors.New("storage list failed")
	ErrStorageDelete   = errors.New("storage delete failed")
	ErrRemoteCall      = errors.New("remote call failed")
	ErrRemoteRejection = errors.New("remote store rejected request")
)

// NewEmailError wraps a failed notification send. Email errors are logged
// at the point of the send and never change the HTTP outcome of the request
// that triggered them.
func NewEmailError(recipient string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindEmail,
		err:        ErrEmailSend,
		Details:    fmt.Sprintf("Failed to send email to %s", recipient),
		Cause:      cause,
	}
}

func NewStorageError(operation string, sentinel error, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindUnknown,
		err:        sentinel,
		Details:    fmt.Sprintf("Object storage %s failed", operation),
		Cause:      cause,
	}
}

// NewNetworkError marks a transport-level failure: the request never got a
// response from the Remote Store.
func NewNetworkError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		Kind:       KindNetwork,
		err:        ErrRemoteCall,
		Details:    fmt.Sprintf("Network failure during %s", operation),
		Cause:      cause,
	}
}

// NewRemoteError marks a non-2xx response from the Remote Store, carrying
// the human-readable message from its error body.
func NewRemoteError(operation string, statusCode int, message string) *ApiErr {
	kind := KindUnknown
	if statusCode == http.StatusBadRequest {
		kind = KindValidation
	} else if statusCode >= http.StatusInternalServerError {
		kind = KindDatabase
	}
	return &ApiErr{
		StatusCode: statusCode,
		Kind:       kind,
		err:        ErrRemoteRejection,
		Details:    fmt.Sprintf("%s: %s", operation, message),
	}
}

func IsEmailError(err error) bool {
	return errors.Is(err, ErrEmailSend)
}

func IsNetworkError(err error) bool {
	return errors.Is(err, ErrRemoteCall)
}

func IsRemoteRejection(err error) bool {
	return errors.Is(err, ErrRemoteRejection)
}
