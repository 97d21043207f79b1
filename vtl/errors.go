package vtl

import "fmt"

// Error codes for the stable boundary error taxonomy: an integer code plus message, recoverable
// through IsErrorCode instead of only through errors.Is on package-level sentinels, so callers at
// the HTTP/RPC boundary can map a code to a stable external string without a big type switch.
const (
	ErrorCodeLockIdentifierIncorrectFormat = iota + 1
	ErrorCodeRedeemScriptInvalid
	ErrorCodeRedeemScriptIsNotLock
	ErrorCodeTransactionNotFound
	ErrorCodeTransactionNotConfirmed
	ErrorCodeTransactionIsNotPayingToScript
	ErrorCodeDurationIsInvalid
	ErrorCodeFeeCalculationFailed
	ErrorCodeNotEnoughBalanceForFirstLock
	ErrorCodeNotEnoughBalanceForRelock
	ErrorCodeCurrentValueTimeLockInPendingState
)

var codeStrings = map[int]string{
	ErrorCodeLockIdentifierIncorrectFormat:      "lock_identifier_incorrect_format",
	ErrorCodeRedeemScriptInvalid:                "lock_resolver_redeem_script_is_invalid",
	ErrorCodeRedeemScriptIsNotLock:              "lock_resolver_redeem_script_is_not_lock",
	ErrorCodeTransactionNotFound:                "lock_resolver_transaction_not_found",
	ErrorCodeTransactionNotConfirmed:            "lock_resolver_transaction_not_confirmed",
	ErrorCodeTransactionIsNotPayingToScript:     "lock_resolver_transaction_is_not_paying_to_script",
	ErrorCodeDurationIsInvalid:                  "lock_resolver_duration_is_invalid",
	ErrorCodeFeeCalculationFailed:               "lock_resolver_fee_calculation_failed",
	ErrorCodeNotEnoughBalanceForFirstLock:       "lock_monitor_not_enough_balance_for_first_lock",
	ErrorCodeNotEnoughBalanceForRelock:          "lock_monitor_not_enough_balance_for_relock",
	ErrorCodeCurrentValueTimeLockInPendingState: "lock_monitor_current_value_time_lock_in_pending_state",
}

// Error is a boundary error carrying one of the stable codes above.
type Error struct {
	code    int
	message string
}

func newError(code int, message string) *Error {
	return &Error{code: code, message: message}
}

func (e *Error) Error() string {
	if len(e.message) == 0 {
		return codeStrings[e.code]
	}
	return fmt.Sprintf("%s : %s", codeStrings[e.code], e.message)
}

// Code returns the stable string code for err if it is a *vtl.Error, or "" otherwise.
func Code(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return ""
	}
	return codeStrings[e.code]
}

// IsErrorCode returns true if err is a *vtl.Error carrying code.
func IsErrorCode(err error, code int) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.code == code
}

func NewLockIdentifierIncorrectFormatError(message string) error {
	return newError(ErrorCodeLockIdentifierIncorrectFormat, message)
}

func NewRedeemScriptInvalidError(message string) error {
	return newError(ErrorCodeRedeemScriptInvalid, message)
}

func NewRedeemScriptIsNotLockError(message string) error {
	return newError(ErrorCodeRedeemScriptIsNotLock, message)
}

func NewTransactionNotFoundError(message string) error {
	return newError(ErrorCodeTransactionNotFound, message)
}

func NewTransactionNotConfirmedError(message string) error {
	return newError(ErrorCodeTransactionNotConfirmed, message)
}

func NewTransactionIsNotPayingToScriptError(message string) error {
	return newError(ErrorCodeTransactionIsNotPayingToScript, message)
}

func NewDurationIsInvalidError(message string) error {
	return newError(ErrorCodeDurationIsInvalid, message)
}

func NewFeeCalculationFailedError(message string) error {
	return newError(ErrorCodeFeeCalculationFailed, message)
}

func NewNotEnoughBalanceForFirstLockError(message string) error {
	return newError(ErrorCodeNotEnoughBalanceForFirstLock, message)
}

func NewNotEnoughBalanceForRelockError(message string) error {
	return newError(ErrorCodeNotEnoughBalanceForRelock, message)
}

func NewCurrentValueTimeLockInPendingStateError() error {
	return newError(ErrorCodeCurrentValueTimeLockInPendingState, "")
}
