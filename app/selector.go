package app

import (
	"sort"

	"nexus-daily/model"
)

// SelectToday returns the tasks that belong in the daily view, highest priority first.
// A task is included when it is due today (done or not), overdue and still open,
// or undated and still open. Equal priorities keep their input order.
func SelectToday(tasks []model.Task, today model.Date) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if inToday(t, today) {
			out = append(out, t)
		}
	}
	SortByPriority(out)
	return out
}

// SelectAll returns every task with the same ordering as SelectToday.
func SelectAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	SortByPriority(out)
	return out
}

// SortByPriority stable-sorts tasks by descending priority rank.
func SortByPriority(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
	})
}

func inToday(t model.Task, today model.Date) bool {
	switch {
	case t.DueDate.IsZero():
		return !t.Completed
	case t.DueDate == today:
		return true
	default:
		return t.DueDate.Before(today) && !t.Completed
	}
}
