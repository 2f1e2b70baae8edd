package validators

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"

	"github.com/MKhiriev/go-gateway/models"
)

const (
	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldPort    = "port"
	FieldMeta    = "meta"
	FieldChecks  = "checks"

	FieldCheckTarget   = "target"
	FieldCheckInterval = "interval"
)

// Consul limits on service meta.
const maxMetaValueLen = 512

var metaKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

type RegistrationValidator struct {
}

func NewRegistrationValidator() Validator {
	return &RegistrationValidator{}
}

func (v *RegistrationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ServiceRegistration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.ServiceRegistration:
		return v.validateRegistration(ctx, *value, fields...)

	case models.HealthCheck:
		return v.validateCheck(ctx, value, fields...)
	case *models.HealthCheck:
		return v.validateCheck(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RegistrationValidator) validateRegistration(ctx context.Context, reg models.ServiceRegistration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldAddress, FieldPort, FieldMeta, FieldChecks}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if reg.ID == "" {
				return ErrEmptyServiceID
			}
		case FieldName:
			if reg.Name == "" {
				return ErrEmptyServiceName
			}
		case FieldAddress:
			if reg.Address == "" {
				return ErrEmptyAddress
			}
		case FieldPort:
			if reg.Port < 1 || reg.Port > 65535 {
				return fmt.Errorf("%w: %d", ErrInvalidPort, reg.Port)
			}
		case FieldMeta:
			for key, value := range reg.Meta {
				if !metaKeyPattern.MatchString(key) {
					return fmt.Errorf("%w: %q", ErrInvalidMetaKey, key)
				}
				if len(value) > maxMetaValueLen {
					return fmt.Errorf("%w: %q", ErrMetaValueTooLong, key)
				}
			}
		case FieldChecks:
			for i, check := range reg.Checks {
				if err := v.validateCheck(ctx, check); err != nil {
					return fmt.Errorf("check %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RegistrationValidator) validateCheck(ctx context.Context, check models.HealthCheck, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCheckTarget, FieldCheckInterval}
	}

	for _, f := range fields {
		switch f {
		case FieldCheckTarget:
			if (check.HTTP == "") == (check.GRPC == "") {
				return ErrInvalidCheck
			}
			if check.HTTP != "" {
				u, err := url.Parse(check.HTTP)
				if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
					return fmt.Errorf("%w: %q", ErrInvalidCheckURL, check.HTTP)
				}
			}
			if check.GRPC != "" {
				if _, _, err := net.SplitHostPort(check.GRPC); err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidCheckURL, check.GRPC)
				}
			}
		case FieldCheckInterval:
			if check.Interval <= 0 {
				return ErrInvalidCheckTimes
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
