package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCartErrors_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"invalid quantity", ErrInvalidQuantity, EINVALID},
		{"owner mismatch", ErrCartOwnerMismatch, EFORBIDDEN},
		{"insufficient stock", ErrInsufficientStock, ECONFLICT},
		{"stock wrapped by the fulfillment tx", fmt.Errorf("commit order: %w", ErrInsufficientStock), ECONFLICT},
		{"cart gone", ErrCartGone, EGONE},
		{"amount mismatch", ErrAmountMismatch, EPAYMENT},
		{"driver error", errors.New("pgx: conn closed"), EINTERNAL},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.code {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestErrorMessage_HidesInternalDetail(t *testing.T) {
	if got := ErrorMessage(ErrCartOwnerMismatch); got != ErrCartOwnerMismatch.Message {
		t.Errorf("ErrorMessage(owner mismatch) = %q", got)
	}

	internal := Internal(errors.New("relation carts does not exist"), "cart.resolve", "failed to load cart")
	if got := ErrorMessage(internal); got != internalMessage {
		t.Errorf("ErrorMessage(internal) = %q", got)
	}
	if got := ErrorMessage(errors.New("dial tcp: refused")); got != internalMessage {
		t.Errorf("ErrorMessage(foreign) = %q", got)
	}
}

func TestWrapError_KeepsCause(t *testing.T) {
	cause := errors.New("stripe: card declined")
	err := WrapError(cause, EPAYMENT, "checkout.create_session", "Payment could not be started")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error lost its cause")
	}
	if got := ErrorOp(err); got != "checkout.create_session" {
		t.Errorf("ErrorOp() = %q", got)
	}
	want := "checkout.create_session: Payment could not be started: stripe: card declined"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if WrapError(nil, EPAYMENT, "checkout.create_session", "x") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		err := NewValidationError("cart.add_item", "product_id", "product_id is required")

		want := "cart.add_item: product_id: product_id is required"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if !IsValidationError(err) {
			t.Error("IsValidationError() = false")
		}
	})

	t.Run("fields accumulate under the first op", func(t *testing.T) {
		var err error
		err = AddFieldError(err, "cart.add_item", "product_id", "product_id must be a UUID")
		err = AddFieldError(err, "ignored", "quantity", "quantity must be at most 10000")

		fields := GetValidationFields(err)
		if len(fields) != 2 {
			t.Fatalf("fields = %v", fields)
		}
		if fields["quantity"] != "quantity must be at most 10000" {
			t.Errorf("quantity = %q", fields["quantity"])
		}
		want := "cart.add_item: validation failed for 2 fields"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("coded errors carry no fields", func(t *testing.T) {
		if GetValidationFields(ErrInvalidQuantity) != nil {
			t.Error("expected nil fields")
		}
		if IsValidationError(ErrInvalidQuantity) {
			t.Error("IsValidationError(ErrInvalidQuantity) = true")
		}
	})
}
