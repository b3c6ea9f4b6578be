package apperrors

var (
	// Registration
	ErrMissingFields  = InvalidArg("missing fields")
	ErrInvalidKey     = Forbidden("invalid key")
	ErrKeyAlreadyUsed = Forbidden("key already used")
	// ErrKeyRace is returned when the conditional claim lost to a concurrent
	// redemption. Same status class as ErrKeyAlreadyUsed, different code, so
	// callers and tests can tell the two apart.
	ErrKeyRace = New(CodeRaceDetected, "invalid or expired key (race condition)")

	// Media
	ErrMediaNotFound   = NotFound("media not found")
	ErrPayloadTooLarge = TooLarge("file too large")

	// Sync
	ErrMissingUserID = InvalidArg("user id required")
)
