package response

// Response is the common JSON envelope for status-only replies.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}
