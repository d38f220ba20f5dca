package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Submission statuses. A submission is created in progress when the student
// starts the exam and transitions to submitted exactly once.
const (
	SubmissionStatusInProgress = "in-progress"
	SubmissionStatusSubmitted  = "submitted"
)

// Submission records one attempt at an exam. Questions snapshots the exam's
// question set at start time so later edits to the exam cannot change how the
// attempt is graded. Answers is index-aligned with Questions.
type Submission struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	SubmitID  int64          `gorm:"not null;uniqueIndex" json:"submit_id"`
	ExamID    int64          `gorm:"not null;index:idx_submission_exam_email,unique" json:"exam_id"`
	Email     string         `gorm:"size:255;not null;index:idx_submission_exam_email,unique" json:"email"`
	Questions datatypes.JSON `gorm:"type:jsonb" json:"questions"`
	Answers   datatypes.JSON `gorm:"type:jsonb" json:"student_answers"`
	Status    string         `gorm:"size:32;not null;index" json:"status"`
	StartedAt time.Time      `json:"started_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsSubmitted reports whether final answers have been attached.
func (s Submission) IsSubmitted() bool {
	return s.Status == SubmissionStatusSubmitted
}

// QuestionSet decodes the snapshotted question JSON.
func (s Submission) QuestionSet() ([]Question, error) {
	if len(s.Questions) == 0 {
		return nil, nil
	}
	var questions []Question
	if err := json.Unmarshal(s.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// AnswerSet decodes the stored answer JSON.
func (s Submission) AnswerSet() ([]string, error) {
	if len(s.Answers) == 0 {
		return nil, nil
	}
	var answers []string
	if err := json.Unmarshal(s.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
