package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotPostable = errors.New("ledger account does not accept postings")
	ErrAccountInactive    = errors.New("running account is inactive")
	ErrInvalidAccountCode = errors.New("invalid ledger account code")

	// Posting errors
	ErrInvalidAmount      = errors.New("amount must be positive and finite")
	ErrQuotationMismatch  = errors.New("metal grams do not match fiat amount at quotation")
	ErrEmptyPosting       = errors.New("posting batch must contain at least one entry")
	ErrUnbalancedTransfer = errors.New("transfer legs do not sum to zero")
	ErrPostingNotFound    = errors.New("posting not found")
	ErrPostingAdjusted    = errors.New("posting has already been adjusted")
	ErrReasonRequired     = errors.New("reversal reason is required")

	// Claim errors
	ErrClaimNotFound        = errors.New("claim not found")
	ErrInvalidClaim         = errors.New("invalid claim")
	ErrAlreadySettled       = errors.New("already settled")
	ErrClaimNotSettled      = errors.New("claim is not settled")
	ErrPostingAlreadyLinked = errors.New("posting already linked to claim")
	ErrPostingMismatch      = errors.New("posting does not match claim")

	// Metal errors
	ErrCreditNotFound      = errors.New("metal credit not found")
	ErrLotNotFound         = errors.New("metal lot not found")
	ErrAlreadyCanceled     = errors.New("metal credit has been canceled")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientStock   = errors.New("insufficient stock in metal lot")
	ErrInvalidPurity       = errors.New("purity must be within (0, 1]")
	ErrInvalidMetalType    = errors.New("invalid metal type")
	ErrInvalidConsumer     = errors.New("consumer must reference exactly one sale or payment")
	ErrInvalidProduct      = errors.New("metal lot must reference a product")

	// Reconciliation errors
	ErrInconsistent       = errors.New("inconsistent state")
	ErrUnknownBackfill    = errors.New("unknown backfill kind")
	ErrMissingPayableRoot = errors.New("metal-credit payable account is not configured")
	ErrLockHeld           = errors.New("another run holds the lock")
)

// ErrorKind is the caller-facing classification of a core failure.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindInvalidAmount       ErrorKind = "INVALID_AMOUNT"
	KindAccountNotPostable  ErrorKind = "ACCOUNT_NOT_POSTABLE"
	KindInsufficientBalance ErrorKind = "INSUFFICIENT_BALANCE"
	KindAlreadySettled      ErrorKind = "ALREADY_SETTLED"
	KindAlreadyCanceled     ErrorKind = "ALREADY_CANCELED"
	KindInconsistent        ErrorKind = "INCONSISTENT"
	KindInvalidRequest      ErrorKind = "INVALID_REQUEST"
	KindBusy                ErrorKind = "BUSY"
	KindInternal            ErrorKind = "INTERNAL"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrAccountNotFound, KindNotFound},
	{ErrPostingNotFound, KindNotFound},
	{ErrClaimNotFound, KindNotFound},
	{ErrCreditNotFound, KindNotFound},
	{ErrLotNotFound, KindNotFound},

	{ErrInvalidAmount, KindInvalidAmount},
	{ErrQuotationMismatch, KindInvalidAmount},
	{ErrUnbalancedTransfer, KindInvalidAmount},
	{ErrAmountTooLarge, KindInvalidAmount},

	{ErrAccountNotPostable, KindAccountNotPostable},
	{ErrAccountInactive, KindAccountNotPostable},

	{ErrInsufficientBalance, KindInsufficientBalance},
	{ErrInsufficientStock, KindInsufficientBalance},

	{ErrAlreadySettled, KindAlreadySettled},
	{ErrClaimNotSettled, KindAlreadySettled},
	{ErrPostingAdjusted, KindAlreadySettled},
	{ErrPostingAlreadyLinked, KindAlreadySettled},

	{ErrAlreadyCanceled, KindAlreadyCanceled},

	{ErrInconsistent, KindInconsistent},

	{ErrLockHeld, KindBusy},

	{ErrEmptyPosting, KindInvalidRequest},
	{ErrReasonRequired, KindInvalidRequest},
	{ErrInvalidAccountCode, KindInvalidRequest},
	{ErrInvalidAccountName, KindInvalidRequest},
	{ErrInvalidCurrency, KindInvalidRequest},
	{ErrPostingMismatch, KindInvalidRequest},
	{ErrInvalidClaim, KindInvalidRequest},
	{ErrInvalidPurity, KindInvalidRequest},
	{ErrInvalidMetalType, KindInvalidRequest},
	{ErrInvalidConsumer, KindInvalidRequest},
	{ErrInvalidProduct, KindInvalidRequest},
	{ErrUnknownBackfill, KindInvalidRequest},
	{ErrMissingPayableRoot, KindInvalidRequest},
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}

	return KindInternal
}
