package exercise

import (
	"context"
	"fmt"
	"time"

	"floodex/internal/missionlog"
)

// outcome is the arbitrator's verdict on a resource-consuming action.
// Exactly one verdict is returned per attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeLocked
	outcomeContested
	outcomeInsufficient
)

// attempt is the single choke point for every resource-consuming intent and
// the only code that mutates availability. Order matters: the contested
// draw runs before the stock check so that logistics mishaps surface even
// when stock is plentiful.
func (e *Engine) attempt(ctx context.Context, res *Resource, quantity int, actor string) outcome {
	now := e.now()

	if until, ok := e.locks[res.ID]; ok && until.After(now) {
		return outcomeLocked
	}

	if e.rand.Float64() < e.tuning.FailureRate {
		until := now.Add(time.Duration(e.tuning.LockSeconds) * time.Second)
		e.locks[res.ID] = until
		u := until
		res.LockedUntil = &u
		e.appendLog(ctx, missionlog.New(now, actor, missionlog.ActionFailure,
			fmt.Sprintf("Convoy with %s stuck in traffic. Delivery delayed.", res.Name)))
		return outcomeContested
	}

	if res.Available < quantity {
		return outcomeInsufficient
	}

	res.Available -= quantity
	return outcomeSuccess
}
