package models

import "time"

// Result statuses.
const (
	ResultStatusPassed = "Passed"
	ResultStatusFailed = "Failed"
)

// Result is the immutable outcome of grading one submission. Exactly one
// result may exist per submission; re-grading returns the stored row instead
// of writing a second one.
type Result struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	ResultID          int64     `gorm:"not null;uniqueIndex" json:"result_id"`
	SubmitID          int64     `gorm:"not null;uniqueIndex" json:"submit_id"`
	ExamID            int64     `gorm:"not null;index" json:"exam_id"`
	Email             string    `gorm:"size:255;not null;index" json:"email"`
	TotalMarks        float64   `gorm:"not null" json:"total_marks"`
	TotalRight        int       `gorm:"not null" json:"total_right"`
	TotalWrong        int       `gorm:"not null" json:"total_wrong"`
	TotalSkip         int       `gorm:"not null" json:"total_skip"`
	TotalAnswered     int       `gorm:"not null" json:"total_answered"`
	TotalNegativeMark float64   `gorm:"not null" json:"total_negative_mark"`
	ObtainMarks       float64   `gorm:"not null" json:"obtain_marks"`
	Status            string    `gorm:"size:16;not null" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// Passed reports whether the result met the exam's pass mark.
func (r Result) Passed() bool {
	return r.Status == ResultStatusPassed
}
