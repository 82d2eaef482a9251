package app

import "fmt"

// Severity classifies a notice for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a transient message produced by an operation. Callers decide how
// long to show it.
type Notice struct {
	Title    string
	Message  string
	Severity Severity
}

func success(title, format string, args ...any) Notice {
	return Notice{Title: title, Message: fmt.Sprintf(format, args...), Severity: SeveritySuccess}
}

func info(title, format string, args ...any) Notice {
	return Notice{Title: title, Message: fmt.Sprintf(format, args...), Severity: SeverityInfo}
}

// ErrorNotice turns an operation error into a notice.
func ErrorNotice(title string, err error) Notice {
	return Notice{Title: title, Message: err.Error(), Severity: SeverityError}
}

// WarningNotice is used for failures that leave in-memory state intact.
func WarningNotice(title, message string) Notice {
	return Notice{Title: title, Message: message, Severity: SeverityWarning}
}
