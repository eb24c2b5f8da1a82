package errors

import "errors"

var (
	ErrUnauthorized           = errors.New("caller is not an administrator")
	ErrProjectNotFound        = errors.New("project not found")
	ErrAlreadyVotedForProject = errors.New("voter already backed this project")
	ErrMaxVotesReached        = errors.New("voter reached the vote cap")
	ErrVotingAlreadyResolved  = errors.New("voting is already resolved")
	ErrNoVotesCast            = errors.New("no projects or votes to resolve")
	ErrArrayLengthMismatch    = errors.New("batch field arrays differ in length")
	ErrInvalidProjectInput    = errors.New("invalid project input")
	ErrInvalidVoteInput       = errors.New("invalid vote input")
	ErrConflict               = errors.New("ledger conflict")
)
