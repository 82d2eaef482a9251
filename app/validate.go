package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"nexus-daily/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var categoryKeywords = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryWork, []string{"work", "meeting", "project", "report"}},
	{model.CategoryHealth, []string{"workout", "exercise", "health", "run"}},
	{model.CategoryLearning, []string{"learn", "study", "read", "course"}},
}

// InferCategory guesses a category from keywords in the title.
// Work wins over health, health over learning; anything else is personal.
func InferCategory(title string) model.Category {
	lower := strings.ToLower(title)
	for _, set := range categoryKeywords {
		for _, w := range set.words {
			if strings.Contains(lower, w) {
				return set.category
			}
		}
	}
	return model.CategoryPersonal
}

// ValidateTaskInput returns the trimmed title, or ErrEmptyTitle when nothing is left.
func ValidateTaskInput(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

// TaskInput is the editable part of a task as entered in a form.
// Empty category is inferred from the title, empty priority means medium.
type TaskInput struct {
	Title       string         `validate:"required,max=200"`
	Description string         `validate:"max=2000"`
	Category    model.Category `validate:"omitempty,oneof=work personal health learning"`
	Priority    model.Priority `validate:"omitempty,oneof=low medium high urgent"`
	DueDate     string         `validate:"omitempty,datetime=2006-01-02"`
	DueTime     string         `validate:"omitempty,datetime=15:04"`
}

// normalize trims and validates in, filling defaults.
func (in TaskInput) normalize() (TaskInput, error) {
	title, err := ValidateTaskInput(in.Title)
	if err != nil {
		return TaskInput{}, err
	}
	in.Title = title
	in.Description = strings.TrimSpace(in.Description)
	in.Category = model.Category(strings.ToLower(strings.TrimSpace(string(in.Category))))
	in.Priority = model.Priority(strings.ToLower(strings.TrimSpace(string(in.Priority))))
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.DueTime = strings.TrimSpace(in.DueTime)

	if err := validate.Struct(in); err != nil {
		return TaskInput{}, fmt.Errorf("%w: %s", ErrInvalidTask, describe(err))
	}

	if in.Category == "" {
		in.Category = InferCategory(in.Title)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	return in, nil
}

type settingsRules struct {
	Theme          string `validate:"oneof=auto light dark"`
	PomodoroLength int    `validate:"min=1,max=240"`
	ShortBreak     int    `validate:"min=1,max=120"`
	LongBreak      int    `validate:"min=1,max=240"`
	WorkStart      string `validate:"datetime=15:04"`
	WorkEnd        string `validate:"datetime=15:04"`
}

// ValidateSettings checks durations are positive, the theme is known and the
// working-hours window is a forward range.
func ValidateSettings(s model.Settings) error {
	rules := settingsRules{
		Theme:          s.Theme,
		PomodoroLength: s.PomodoroLength,
		ShortBreak:     s.ShortBreak,
		LongBreak:      s.LongBreak,
		WorkStart:      s.WorkingHours.Start,
		WorkEnd:        s.WorkingHours.End,
	}
	if err := validate.Struct(rules); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, describe(err))
	}
	start, _ := time.Parse("15:04", s.WorkingHours.Start)
	end, _ := time.Parse("15:04", s.WorkingHours.End)
	if !start.Before(end) {
		return fmt.Errorf("%w: working hours must start before they end", ErrInvalidSettings)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param()))
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s must match %s", strings.ToLower(fe.Field()), fe.Param()))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s out of range (%s %s)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
