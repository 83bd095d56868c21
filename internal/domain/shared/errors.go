package shared

// DomainError is a business rule violation with a stable code. The HTTP
// layer prefixes the code with ERR_ and picks the status from it.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	// ErrPaymentProvider wraps failures reported by Stripe or PayPal
	ErrPaymentProvider = NewDomainError("PAYMENT_PROVIDER", "Payment provider request failed")
)
