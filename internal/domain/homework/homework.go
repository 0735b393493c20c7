// internal/domain/homework/homework.go
package homework

import "encoding/json"

// Status is the review state reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts is the only source of valid status codes.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the display text for a status code.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Statuses lists every documented status code.
func Statuses() []Status {
	return []Status{StatusApproved, StatusReviewing, StatusRejected}
}

// Homework is one submission's review metadata as returned by the API.
type Homework struct {
	ID              int64  `json:"id"`
	HomeworkName    string `json:"homework_name"`
	Status          Status `json:"status"`
	LessonName      string `json:"lesson_name,omitempty"`
	ReviewerComment string `json:"reviewer_comment,omitempty"`
	DateUpdated     string `json:"date_updated,omitempty"`
}

// Response is a single answer of the homework_statuses endpoint.
// Homeworks is kept raw so that its shape can be validated separately.
type Response struct {
	Homeworks   json.RawMessage `json:"homeworks"`
	CurrentDate int64           `json:"current_date"`
}
