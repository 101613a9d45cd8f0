package gamecore

import "errors"

// Errors returned by the game engine. Callers are expected to match them with
// errors.Is; some are wrapped with contextual detail (remaining cooldown,
// required fee) before being returned.
var (
	// ErrGamePaused is returned while an operator pause is in effect.
	ErrGamePaused = errors.New("game is paused")

	// ErrGameInactive is returned when a message arrives outside an active
	// iteration (before genesis start or while a winner is being processed).
	ErrGameInactive = errors.New("no active iteration")

	// ErrCooldownActive is returned between a winner declaration and the
	// opening of the next iteration.
	ErrCooldownActive = errors.New("iteration cooldown active")

	// ErrContentTooLong is returned when a message exceeds the sender's
	// effective character limit.
	ErrContentTooLong = errors.New("message exceeds character limit")

	// ErrInsufficientPayment is returned when the payment does not cover the
	// discounted fee of the next sequence number.
	ErrInsufficientPayment = errors.New("payment below required fee")

	// ErrNotTokenOwner is returned when a sender submits with an NFT that
	// belongs to someone else.
	ErrNotTokenOwner = errors.New("sender does not own token")

	// ErrUnknownToken is returned for a token ID that was never minted.
	ErrUnknownToken = errors.New("unknown token")

	// ErrNotAParticipant is returned when a winner is declared for an address
	// that never paid a message fee in the current iteration.
	ErrNotAParticipant = errors.New("winner is not a participant of this iteration")

	// ErrAlreadyProcessing is returned when a second winner declaration
	// arrives while one is already being finalized.
	ErrAlreadyProcessing = errors.New("winner already being processed")

	// ErrNothingToWithdraw is returned on a team withdrawal from an empty
	// team pool.
	ErrNothingToWithdraw = errors.New("team pool is empty")
)
