package api

import "fmt"

// ServerError means the server responded with a non-2xx status.
type ServerError struct {
	StatusCode int
	Status     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded with %d %s", e.StatusCode, e.Status)
}

func (e *ServerError) UserMessage() string {
	return fmt.Sprintf("Server error: %d %s", e.StatusCode, e.Status)
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("error sending request: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) UserMessage() string {
	return "Network error: Unable to connect to server. Make sure the API server is running."
}

// RequestError covers failures building the request or reading the response.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) UserMessage() string {
	return "Error: " + e.Err.Error()
}
