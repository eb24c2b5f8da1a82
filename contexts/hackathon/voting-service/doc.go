// Package votingservice implements the hackathon voting core inside the
// hackathon context.
//
// The module owns project registration, per-voter vote recording, and the
// one-time resolution that ranks projects and triggers prize payouts. It
// keeps business rules in application/domain layers and isolates
// infrastructure concerns behind ports and adapters.
package votingservice
