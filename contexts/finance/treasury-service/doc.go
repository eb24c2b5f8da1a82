// Package treasuryservice implements the prize treasury inside the finance
// context.
//
// The module owns funded prize accounts and the transfer ledger: every
// payout attempt is recorded with its outcome so resolution-time
// distribution stays auditable and retryable out of band.
package treasuryservice
