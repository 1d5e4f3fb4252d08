// Client intent handlers: validation, arbitration, logging, broadcast
package exercise

import (
	"context"
	"fmt"

	"floodex/internal/missionlog"
)

// Viewer-facing advisory texts.
const (
	msgObjectiveReached = "Objective reached."
	msgConvoyStuck      = "Convoy stuck in traffic. Delivery delayed."
	msgResourceLocked   = "Resource is still locked."
	msgInsufficient     = "Not enough resources available."
	msgResourceNotFound = "Resource not found."
	msgInvalidAmount    = "Invalid resource amount."
	msgInvalidSandbags  = "Invalid sandbag amount."
)

// InjectScenario expands a named scenario into its incident batch and logs
// one SCENARIO entry summarizing it. Unknown keys are ignored.
func (e *Engine) InjectScenario(ctx context.Context, actor, key string) Notice {
	e.mu.Lock()
	s, ok := e.catalog.Find(key)
	if !ok {
		e.mu.Unlock()
		return Notice{}
	}
	for _, inc := range s.Incidents {
		ev := e.newEvent(inc.Title, Category(inc.Category), Location{Lat: inc.Lat, Lng: inc.Lng}, 0, true)
		e.addEvent(ev)
	}
	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionScenario, s.Summary))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{}
}

// MoveEvent relocates an event marker. Unknown ids are ignored silently.
func (e *Engine) MoveEvent(ctx context.Context, actor, eventID string, lat, lng float64) Notice {
	e.mu.Lock()
	ev, ok := e.events[eventID]
	if !ok {
		e.mu.Unlock()
		return Notice{}
	}
	ev.Location = Location{Lat: lat, Lng: lng}
	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionMarker,
		fmt.Sprintf("%s moved (%.4f, %.4f).", ev.Title, lat, lng)))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{}
}

// AddMarker places an ad hoc incident on the map.
func (e *Engine) AddMarker(ctx context.Context, actor, title string, category Category, lat, lng float64) Notice {
	e.mu.Lock()
	ev := e.newEvent(title, category, Location{Lat: lat, Lng: lng}, 0, true)
	e.addEvent(ev)
	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionMarker,
		fmt.Sprintf("%s placed.", title)))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{}
}

// CreateTask commits one unit of a resource to an event and opens a todo
// task for it.
func (e *Engine) CreateTask(ctx context.Context, actor, eventID, resourceID, title string) Notice {
	e.mu.Lock()
	res, ok := e.resources[resourceID]
	if !ok {
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgResourceNotFound}
	}

	switch e.attempt(ctx, res, 1, actor) {
	case outcomeLocked:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgResourceLocked}
	case outcomeContested:
		e.publishLocked()
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgConvoyStuck}
	case outcomeInsufficient:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgInsufficient}
	}

	task := e.createTask(eventID, resourceID, title)
	// Linking to a missing event is tolerated; resolved or expired events
	// never reopen.
	if ev, ok := e.events[eventID]; ok && ev.Status != EventResolved && ev.Status != EventExpired {
		ev.Status = EventInProgress
	}
	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionTask, task.Title))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{Level: NoticeSuccess, Message: msgObjectiveReached}
}

// UpdateTask advances a task's workflow state. Only the transition to done
// carries side effects; unknown task ids are ignored.
func (e *Engine) UpdateTask(ctx context.Context, actor, taskID string, status TaskStatus) Notice {
	e.mu.Lock()
	task, ok := e.tasks[taskID]
	if !ok {
		e.mu.Unlock()
		return Notice{}
	}

	if status == TaskDone {
		if task.Status == TaskDone {
			e.mu.Unlock()
			return Notice{}
		}
		e.completeTask(ctx, actor, task)
	} else {
		task.Status = status
	}
	e.publishLocked()
	e.mu.Unlock()
	return Notice{}
}

// ConsumeResource debits a quantity directly, outside any task.
func (e *Engine) ConsumeResource(ctx context.Context, actor, resourceID string, amount int, note string) Notice {
	e.mu.Lock()
	res, ok := e.resources[resourceID]
	if !ok || amount <= 0 {
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgInvalidAmount}
	}

	switch e.attempt(ctx, res, amount, actor) {
	case outcomeLocked:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgResourceLocked}
	case outcomeContested:
		e.publishLocked()
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgConvoyStuck}
	case outcomeInsufficient:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgInsufficient}
	}

	details := fmt.Sprintf("%d %s consumed.", amount, res.Name)
	if note != "" {
		details = details + " " + note
	}
	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionResource, details))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{Level: NoticeSuccess, Message: msgObjectiveReached}
}

// PlaceSandbags debits the sandbag pool and records a non-critical barrier
// event at the target incident's location.
func (e *Engine) PlaceSandbags(ctx context.Context, actor, eventID string, amount int) Notice {
	e.mu.Lock()
	resID, ok := e.byCode["sandbags"]
	res := e.resources[resID]
	if !ok || res == nil || amount <= 0 {
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgInvalidSandbags}
	}
	ev, ok := e.events[eventID]
	if !ok {
		e.mu.Unlock()
		return Notice{}
	}

	switch e.attempt(ctx, res, amount, actor) {
	case outcomeLocked:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgResourceLocked}
	case outcomeContested:
		e.publishLocked()
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgConvoyStuck}
	case outcomeInsufficient:
		e.mu.Unlock()
		return Notice{Level: NoticeError, Message: msgInsufficient}
	}

	barrier := e.newEvent(
		fmt.Sprintf("Sandbag barrier at %s", ev.Title),
		CategoryEngineering,
		ev.Location,
		0,
		false,
	)
	e.addEvent(barrier)

	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionResource,
		fmt.Sprintf("%d sandbags moved to %s.", amount, ev.Title)))
	e.publishLocked()
	e.mu.Unlock()
	return Notice{Level: NoticeSuccess, Message: msgObjectiveReached}
}
