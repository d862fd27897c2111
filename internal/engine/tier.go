// Package engine hosts the tier strategies, the action router that
// sequences them, and the verifier. A tier locates and acts on one UI
// element with its own substrate; the router tries tiers in fixed priority
// order and stops at the first success.
package engine

import (
	"context"

	"github.com/automata-tools/deskagent/internal/model"
)

// Status is a tier attempt's three-valued outcome. Unavailable means the
// tier's preconditions were not met and costs the router nothing; Failed
// means the tier ran and could not complete, which still allows fallback.
type Status int

const (
	StatusSuccess Status = iota
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of one tier attempt.
type Outcome struct {
	Status   Status
	Strategy string             // set on success: tier plus sub-path
	Target   model.ActionTarget // set on success: where the action landed
	Err      error              // set on failure, for the log
}

// Success tags the outcome with the strategy that satisfied the request
// and the target the action landed on. Every tier resolves to exactly one
// target shape, never an overloaded slot.
func Success(strategy string, target model.ActionTarget) Outcome {
	return Outcome{Status: StatusSuccess, Strategy: strategy, Target: target}
}

// Unavailable reports unmet preconditions.
func Unavailable() Outcome {
	return Outcome{Status: StatusUnavailable}
}

// Failure reports an attempted-but-failed tier.
func Failure(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// Request carries one intent down the tier chain.
type Request struct {
	Win      model.Window
	Identity model.Identity
	Intent   model.Intent
}

// Tier is one interchangeable strategy for locating and acting on an
// element. Implementations convert every internal error into the outcome;
// they never let one escape.
type Tier interface {
	Name() string
	Attempt(ctx context.Context, req Request) Outcome
}
