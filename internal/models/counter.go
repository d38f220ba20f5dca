package models

// CounterName is the primary key of the singleton counter row. The value is
// carried over from the legacy document store so existing deployments keep
// their sequence state.
const CounterName = "taskIdCounter"

// CounterKind selects which named sequence an allocation advances.
type CounterKind string

const (
	KindExam    CounterKind = "exam"
	KindCourse  CounterKind = "course"
	KindBlog    CounterKind = "blog"
	KindPayment CounterKind = "payment"
	KindSubmit  CounterKind = "submit"
	KindResult  CounterKind = "result"
)

// Column maps the kind to the counter column it advances. Unknown kinds map
// to the empty string.
func (k CounterKind) Column() string {
	switch k {
	case KindExam:
		return "last_exam_id"
	case KindCourse:
		return "last_course_id"
	case KindBlog:
		return "last_blog_id"
	case KindPayment:
		return "last_payment_id"
	case KindSubmit:
		return "last_submit_id"
	case KindResult:
		return "last_result_id"
	default:
		return ""
	}
}

// Valid reports whether the kind names a known sequence.
func (k CounterKind) Valid() bool {
	return k.Column() != ""
}

// Counter is the singleton row backing the sequential ID allocator. Each
// column holds the last value handed out for its kind; values only ever
// increase and are never reused.
type Counter struct {
	Name          string `gorm:"primaryKey;size:64" json:"name"`
	LastExamID    int64  `gorm:"not null;default:0" json:"last_exam_id"`
	LastCourseID  int64  `gorm:"not null;default:0" json:"last_course_id"`
	LastBlogID    int64  `gorm:"not null;default:0" json:"last_blog_id"`
	LastPaymentID int64  `gorm:"not null;default:0" json:"last_payment_id"`
	LastSubmitID  int64  `gorm:"not null;default:0" json:"last_submit_id"`
	LastResultID  int64  `gorm:"not null;default:0" json:"last_result_id"`
}

// Value returns the stored last ID for the given kind.
func (c Counter) Value(kind CounterKind) int64 {
	switch kind {
	case KindExam:
		return c.LastExamID
	case KindCourse:
		return c.LastCourseID
	case KindBlog:
		return c.LastBlogID
	case KindPayment:
		return c.LastPaymentID
	case KindSubmit:
		return c.LastSubmitID
	case KindResult:
		return c.LastResultID
	default:
		return 0
	}
}
