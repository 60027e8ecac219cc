// Package api serves the JSON cart, checkout and analytics endpoints.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// decodeJSON reads a JSON body into dst and runs its validate tags.
// Failures come back as a domain.ValidationError keyed by JSON field.
func decodeJSON(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return domain.Errorf(domain.EINVALID, op, "Request body too large")
		case errors.Is(err, io.EOF):
			return domain.Errorf(domain.EINVALID, op, "Request body is required")
		default:
			return domain.Errorf(domain.EINVALID, op, "Malformed JSON body")
		}
	}

	if err := requestValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.WrapError(err, domain.EINVALID, op, "Invalid request")
		}
		var out error
		for _, fe := range verrs {
			out = domain.AddFieldError(out, op, fe.Field(), fieldMessage(fe))
		}
		return out
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// ownerFrom picks the cart owner for the request. An account wins over
// the anonymous session.
func ownerFrom(r *http.Request) (domain.CartOwner, error) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())
	return domain.OwnerFrom(accountID, middleware.SessionIDFromContext(r.Context()))
}

func pathUUID(r *http.Request, name, op string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(op, name, name+" must be a UUID")
	}
	return id, nil
}
