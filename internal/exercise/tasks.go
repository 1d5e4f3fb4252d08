package exercise

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"floodex/internal/missionlog"
)

const untitledTask = "Untitled measure"

// createTask records an accepted resource commitment. Capacity has already
// been debited by the arbitrator.
func (e *Engine) createTask(eventID, resourceID, title string) *Task {
	if title == "" {
		title = untitledTask
	}
	t := &Task{
		ID:         uuid.New().String(),
		Title:      title,
		Status:     TaskTodo,
		EventID:    eventID,
		ResourceID: resourceID,
		CreatedAt:  e.now(),
	}
	e.tasks[t.ID] = t
	e.taskOrder = append(e.taskOrder, t.ID)
	return t
}

// completeTask flips a todo task to done, resolves the linked event, and
// credits the resolve bonus.
func (e *Engine) completeTask(ctx context.Context, actor string, task *Task) {
	task.Status = TaskDone

	if ev, ok := e.events[task.EventID]; ok && ev.Status != EventExpired {
		ev.Status = EventResolved
	}
	e.setScore(ctx, e.score+e.tuning.ResolveBonus)

	e.appendLog(ctx, missionlog.New(e.now(), actor, missionlog.ActionResolve,
		fmt.Sprintf("Measure completed: %s", task.Title)))
}
