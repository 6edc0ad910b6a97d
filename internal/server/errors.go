package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/invoice/gst"
	ledgerdomain "github.com/saralbooks/saral/internal/ledger/domain"
	"github.com/saralbooks/saral/internal/ledger/reconcile"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	productdomain "github.com/saralbooks/saral/internal/product/domain"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"github.com/saralbooks/saral/pkg/db"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isCompanyValidationError(err),
		isCustomerValidationError(err),
		isProductValidationError(err),
		isTaxTierValidationError(err),
		isInvoiceValidationError(err),
		isPaymentValidationError(err),
		isLedgerValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, taxtierdomain.ErrTierDisabled),
		errors.Is(err, productdomain.ErrCategoryInUse):
		return true
	case db.IsDuplicateKeyErr(err):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, taxtierdomain.ErrTierDisabled):
		return "tax tier is disabled"
	case errors.Is(err, productdomain.ErrCategoryInUse):
		return "category is in use"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrCategoryNotFound),
		errors.Is(err, taxtierdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrCompanyNotFound),
		errors.Is(err, invoicedomain.ErrCustomerNotFound),
		errors.Is(err, invoicedomain.ErrTierNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrCustomerNotFound),
		errors.Is(err, paymentdomain.ErrInvoiceNotFound),
		errors.Is(err, ledgerdomain.ErrCustomerNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isCompanyValidationError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidGSTIN),
		errors.Is(err, companydomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidStateCode),
		errors.Is(err, customerdomain.ErrInvalidAmount),
		errors.Is(err, customerdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isProductValidationError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidRate),
		errors.Is(err, productdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isTaxTierValidationError(err error) bool {
	switch {
	case errors.Is(err, taxtierdomain.ErrInvalidLabel),
		errors.Is(err, taxtierdomain.ErrInvalidRate),
		errors.Is(err, taxtierdomain.ErrHalfRateMismatch),
		errors.Is(err, taxtierdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isInvoiceValidationError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrNoItems),
		errors.Is(err, invoicedomain.ErrInvalidItem),
		errors.Is(err, invoicedomain.ErrInvalidRange),
		errors.Is(err, gst.ErrMissingGSTIN),
		errors.Is(err, gst.ErrInvalidStateCode),
		errors.Is(err, gst.ErrInvalidQuantity),
		errors.Is(err, gst.ErrInvalidUnitRate),
		errors.Is(err, gst.ErrInvalidTaxRate):
		return true
	default:
		return false
	}
}

func isPaymentValidationError(err error) bool {
	switch {
	case errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidMode),
		errors.Is(err, paymentdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isLedgerValidationError(err error) bool {
	switch {
	case errors.Is(err, ledgerdomain.ErrInvalidID),
		errors.Is(err, reconcile.ErrInvalidRange):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
