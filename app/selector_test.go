package app

import (
	"testing"

	"nexus-daily/model"
)

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func sameTitles(got []model.Task, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Title != want[i] {
			return false
		}
	}
	return true
}

func TestSelectTodayOrdersByPriority(t *testing.T) {
	today := model.Date("2024-06-10")
	tasks := []model.Task{
		{ID: 1, Title: "A", Priority: model.PriorityLow},
		{ID: 2, Title: "B", Priority: model.PriorityUrgent, DueDate: today},
	}

	got := SelectToday(tasks, today)
	if !sameTitles(got, "B", "A") {
		t.Fatalf("expected [B A], got %v", titles(got))
	}
}

func TestSelectTodayInclusionRules(t *testing.T) {
	today := model.Date("2024-06-10")
	tasks := []model.Task{
		{ID: 1, Title: "due-today-open", Priority: model.PriorityLow, DueDate: today},
		{ID: 2, Title: "due-today-done", Priority: model.PriorityLow, DueDate: today, Completed: true},
		{ID: 3, Title: "overdue-open", Priority: model.PriorityLow, DueDate: "2024-06-01"},
		{ID: 4, Title: "overdue-done", Priority: model.PriorityLow, DueDate: "2024-06-01", Completed: true},
		{ID: 5, Title: "undated-open", Priority: model.PriorityLow},
		{ID: 6, Title: "undated-done", Priority: model.PriorityLow, Completed: true},
		{ID: 7, Title: "future-open", Priority: model.PriorityLow, DueDate: "2024-06-11"},
		{ID: 8, Title: "future-done", Priority: model.PriorityLow, DueDate: "2024-07-01", Completed: true},
	}

	got := SelectToday(tasks, today)
	if !sameTitles(got, "due-today-open", "due-today-done", "overdue-open", "undated-open") {
		t.Fatalf("unexpected selection: %v", titles(got))
	}

	for _, task := range got {
		if task.Completed && task.DueDate.Before(today) {
			t.Fatalf("completed overdue task leaked into today view: %+v", task)
		}
	}
}

func TestSelectTodayIsStableForEqualPriority(t *testing.T) {
	today := model.Date("2024-06-10")
	tasks := []model.Task{
		{ID: 1, Title: "m1", Priority: model.PriorityMedium},
		{ID: 2, Title: "h1", Priority: model.PriorityHigh},
		{ID: 3, Title: "m2", Priority: model.PriorityMedium},
		{ID: 4, Title: "h2", Priority: model.PriorityHigh},
		{ID: 5, Title: "m3", Priority: model.PriorityMedium},
		{ID: 6, Title: "u1", Priority: model.PriorityUrgent},
	}

	got := SelectToday(tasks, today)
	if !sameTitles(got, "u1", "h1", "h2", "m1", "m2", "m3") {
		t.Fatalf("expected stable priority order, got %v", titles(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() < got[i].Priority.Rank() {
			t.Fatalf("result not sorted by non-increasing rank: %v", titles(got))
		}
	}
}

func TestSelectTodayUnknownPrioritySortsLast(t *testing.T) {
	today := model.Date("2024-06-10")
	tasks := []model.Task{
		{ID: 1, Title: "legacy", Priority: "someday"},
		{ID: 2, Title: "blank"},
		{ID: 3, Title: "low", Priority: model.PriorityLow},
	}

	got := SelectToday(tasks, today)
	if !sameTitles(got, "low", "legacy", "blank") {
		t.Fatalf("expected unknown priorities after low, got %v", titles(got))
	}
}

func TestSelectTodayEmptyAndDoesNotMutateInput(t *testing.T) {
	if got := SelectToday(nil, "2024-06-10"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", titles(got))
	}

	tasks := []model.Task{
		{ID: 1, Title: "low", Priority: model.PriorityLow},
		{ID: 2, Title: "urgent", Priority: model.PriorityUrgent},
	}
	_ = SelectToday(tasks, "2024-06-10")
	if tasks[0].Title != "low" || tasks[1].Title != "urgent" {
		t.Fatalf("input slice was reordered: %v", titles(tasks))
	}
}

func TestSelectAllKeepsEveryTaskSorted(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "done-low", Priority: model.PriorityLow, Completed: true},
		{ID: 2, Title: "future-high", Priority: model.PriorityHigh, DueDate: "2099-01-01"},
		{ID: 3, Title: "medium", Priority: model.PriorityMedium},
	}

	got := SelectAll(tasks)
	if !sameTitles(got, "future-high", "medium", "done-low") {
		t.Fatalf("unexpected all-tasks order: %v", titles(got))
	}
	if tasks[0].Title != "done-low" {
		t.Fatalf("SelectAll must not reorder its input")
	}
}
