package httpdto

// Stable response codes. Clients switch on these, never on the error text.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
)

type Response[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}

// NewFormErrorResponse reports per-field validation failures.
func NewFormErrorResponse(fields map[string]string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   "invalid input",
		Code:    CodeInvalidRequest,
		Fields:  fields,
	}
}
