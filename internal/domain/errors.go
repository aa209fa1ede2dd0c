package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrStoreUnavailable = errors.New("almacenamiento no disponible o en solo lectura")
)

// Reglas de validación reconocibles por la UI.
const (
	RuleEmptyCart           = "EMPTY_CART"
	RuleNoProduct           = "NO_PRODUCT"
	RuleInvalidQuantity     = "INVALID_QUANTITY"
	RuleInvalidLine         = "INVALID_LINE"
	RuleNegativeDiscount    = "NEGATIVE_DISCOUNT"
	RuleDiscountExceedTotal = "DISCOUNT_EXCEEDS_TOTAL"
	RuleCustomerRequired    = "CUSTOMER_REQUIRED"
	RulePaymentRequired     = "PAYMENT_REQUIRED"
	RuleInsufficientPayment = "INSUFFICIENT_PAYMENT"
	RuleInvalidPaymentType  = "INVALID_PAYMENT_TYPE"
	RuleInvalidStatus       = "INVALID_STATUS"
	RuleRequiredField       = "REQUIRED_FIELD"
	RuleInvalidPrice        = "INVALID_PRICE"
	RuleInvalidFile         = "INVALID_FILE"
	RuleMissingProductName  = "MISSING_PRODUCT_NAME"
	RuleSaleNotCompleted    = "SALE_NOT_COMPLETED"
	RuleTooManySuppliers    = "TOO_MANY_SUPPLIERS"
	RuleInvalidDate         = "INVALID_DATE"
)

// ValidationError error detectable antes de tocar el almacenamiento.
// Rule identifica la regla incumplida; Message es apto para mostrar al usuario.
type ValidationError struct {
	Rule    string
	Message string
	Details any
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError sin detalles.
func NewValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// AsValidationError extrae el ValidationError de la cadena, si existe.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
