package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyServiceID    = errors.New("service id is required")
	ErrEmptyServiceName  = errors.New("service name is required")
	ErrEmptyAddress      = errors.New("service address is required")
	ErrInvalidPort       = errors.New("invalid service port")
	ErrInvalidMetaKey    = errors.New("invalid meta key")
	ErrMetaValueTooLong  = errors.New("meta value is too long")
	ErrInvalidCheck      = errors.New("health check must set exactly one of HTTP or GRPC")
	ErrInvalidCheckURL   = errors.New("invalid health check url")
	ErrInvalidCheckTimes = errors.New("health check interval must be positive")
)
