package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrUserNotFound
	ErrPhoneNotConfirmed
	ErrOTPInvalid
	ErrOTPExpired
	ErrOTPThrottled
	ErrOTPSendFailed
	ErrPriceRange
	ErrUnknownCategory
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "unauthorize request",
	ErrForbidden:         "operation not allowed",
	ErrCredentialExists:  "phone already registered",
	ErrInvalidPassword:   "password invalid",
	ErrUserNotFound:      "user not found",
	ErrPhoneNotConfirmed: "phone not confirmed",
	ErrOTPInvalid:        "verification code invalid",
	ErrOTPExpired:        "verification code expired",
	ErrOTPThrottled:      "verification code already sent, try again later",
	ErrOTPSendFailed:     "failed to send verification code",
	ErrPriceRange:        "minimum price exceeds maximum price",
	ErrUnknownCategory:   "unknown category",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrForbidden:         http.StatusForbidden,
	ErrCredentialExists:  http.StatusBadRequest,
	ErrInvalidPassword:   http.StatusBadRequest,
	ErrUserNotFound:      http.StatusBadRequest,
	ErrPhoneNotConfirmed: http.StatusBadRequest,
	ErrOTPInvalid:        http.StatusBadRequest,
	ErrOTPExpired:        http.StatusBadRequest,
	ErrOTPThrottled:      http.StatusTooManyRequests,
	ErrOTPSendFailed:     http.StatusBadGateway,
	ErrPriceRange:        http.StatusBadRequest,
	ErrUnknownCategory:   http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrUnauthorize:       "0004",
	ErrForbidden:         "0005",
	ErrCredentialExists:  "0006",
	ErrInvalidPassword:   "0007",
	ErrUserNotFound:      "0008",
	ErrPhoneNotConfirmed: "0009",
	ErrOTPInvalid:        "0010",
	ErrOTPExpired:        "0011",
	ErrOTPThrottled:      "0012",
	ErrOTPSendFailed:     "0013",
	ErrPriceRange:        "0014",
	ErrUnknownCategory:   "0015",
}
