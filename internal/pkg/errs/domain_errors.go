package errs

// Domain-specific sentinel errors for the choice-state usecase layers
var (
	// Trip catalog errors
	ErrTripNotFound = New("trip not found")

	// Intent errors
	ErrIntentNotFound      = New("intent not found")
	ErrReductionOutOfRange = New("reduction out of bounds")
)
