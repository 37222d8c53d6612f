package errs

import "errors"

var ErrMerchantNotFound = errors.New("merchant not found")
var ErrNonPositiveAmount = errors.New("payment amount must be positive")
var ErrBadGatewayPayload = errors.New("unparseable gateway payload")
var ErrGatewayNotSuccessful = errors.New("gateway reported non-success code")
var ErrStaffNotFound = errors.New("staff user not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrLoginAlreadyExists = errors.New("login already exists")
