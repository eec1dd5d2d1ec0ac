package model

// Severity classifies a notification for display.
type Severity string

// Notification severities.
const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message surfaced to the user after an
// operation. It carries no state back into the task store or timer.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Success builds a success notification.
func Success(msg string) Notification {
	return Notification{Severity: SeveritySuccess, Message: msg}
}

// Info builds an informational notification.
func Info(msg string) Notification {
	return Notification{Severity: SeverityInfo, Message: msg}
}

// Warning builds a warning notification.
func Warning(msg string) Notification {
	return Notification{Severity: SeverityWarning, Message: msg}
}

// Failure builds an error notification.
func Failure(msg string) Notification {
	return Notification{Severity: SeverityError, Message: msg}
}
