package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeOrderSubmitted  = "ORDER_SUBMITTED"
	ErrCodeNoOrder         = "NO_ORDER"
	ErrCodeInvalidShipping = "INVALID_SHIPPING_METHOD"
	ErrCodeInvalidPayment  = "INVALID_PAYMENT_METHOD"
	ErrCodeSessionExpired  = "SESSION_EXPIRED"
	ErrCodeUnknownProvince = "UNKNOWN_PROVINCE"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "Giỏ hàng của bạn đang trống")
	ErrOrderSubmitted  = NewDomainError(ErrCodeOrderSubmitted, "Order has already been submitted")
	ErrNoOrder         = NewDomainError(ErrCodeNoOrder, "No order has been placed")
	ErrInvalidShipping = NewDomainError(ErrCodeInvalidShipping, "Unknown shipping method")
	ErrInvalidPayment  = NewDomainError(ErrCodeInvalidPayment, "Unknown payment method")
	ErrSessionExpired  = NewDomainError(ErrCodeSessionExpired, "Session has expired, please sign in again")
)
