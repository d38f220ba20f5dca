package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Exam types as exposed in the public catalog.
const (
	ExamTypeSingle = "single"
	ExamTypeBatch  = "batch"
)

// Question is one entry of an exam's question set. Only Answer participates
// in grading; the remaining fields are display data.
type Question struct {
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"ans"`
}

// Exam is a catalog entry plus the scoring policy applied when submissions
// against it are graded. ExamID is the allocator-issued public identifier,
// distinct from the storage primary key.
type Exam struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	ExamID          int64          `gorm:"not null;uniqueIndex" json:"exam_id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	ExamType        string         `gorm:"size:32;not null;index" json:"exam_type"`
	DurationMinutes int            `json:"duration_minutes"`
	TotalMarks      float64        `gorm:"not null" json:"total_marks"`
	PassMark        float64        `gorm:"not null" json:"pass_mark"`
	NegativeMarking bool           `gorm:"not null;default:false" json:"is_negative_marks"`
	NegativeMark    float64        `gorm:"not null;default:0" json:"negative_mark"`
	Questions       datatypes.JSON `gorm:"type:jsonb" json:"questions"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// QuestionSet decodes the stored question JSON.
func (e Exam) QuestionSet() ([]Question, error) {
	if len(e.Questions) == 0 {
		return nil, nil
	}
	var questions []Question
	if err := json.Unmarshal(e.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
