package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/grading"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

type stubCounterRepo struct {
	mu     sync.Mutex
	values map[models.CounterKind]int64
	err    error
}

func (s *stubCounterRepo) Next(ctx context.Context, kind models.CounterKind) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[models.CounterKind]int64{}
	}
	s.values[kind]++
	return s.values[kind], nil
}

func (s *stubCounterRepo) Ensure(ctx context.Context) error { return nil }

func (s *stubCounterRepo) Current(ctx context.Context, kind models.CounterKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[kind], nil
}

type stubSubmissionRepo struct {
	stored models.Submission
	err    error
}

func (s *stubSubmissionRepo) GetByExamAndEmail(ctx context.Context, examID int64, email string) (models.Submission, error) {
	if s.err != nil {
		return models.Submission{}, s.err
	}
	if s.stored.SubmitID == 0 {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubSubmissionRepo) GetBySubmitID(ctx context.Context, submitID int64) (models.Submission, error) {
	return s.GetByExamAndEmail(ctx, 0, "")
}

func (s *stubSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	clone := *submission
	s.stored = clone
	return nil
}

func (s *stubSubmissionRepo) FinalizeAnswers(ctx context.Context, submitID int64, answers datatypes.JSON) (bool, error) {
	if s.stored.Status != models.SubmissionStatusInProgress {
		return false, nil
	}
	s.stored.Answers = answers
	s.stored.Status = models.SubmissionStatusSubmitted
	return true, nil
}

type stubExamRepo struct {
	exam models.Exam
	err  error
}

func (s *stubExamRepo) List(ctx context.Context, filter repository.ExamFilter) ([]models.Exam, error) {
	return nil, errors.New("not implemented")
}

func (s *stubExamRepo) GetByExamID(ctx context.Context, examID int64) (models.Exam, error) {
	if s.err != nil {
		return models.Exam{}, s.err
	}
	if s.exam.ExamID == 0 {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return s.exam, nil
}

func (s *stubExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	clone := *exam
	s.exam = clone
	return nil
}

type stubResultRepo struct {
	stored    *models.Result
	createErr error
	// raceWith, when set alongside createErr, becomes the stored row the
	// moment Create fails, mimicking a concurrent insert winning the
	// unique-index race on submit_id.
	raceWith *models.Result
}

func (s *stubResultRepo) GetByResultID(ctx context.Context, resultID int64) (models.Result, error) {
	if s.stored == nil {
		return models.Result{}, gorm.ErrRecordNotFound
	}
	return *s.stored, nil
}

func (s *stubResultRepo) GetBySubmitID(ctx context.Context, submitID int64) (models.Result, error) {
	if s.stored == nil || s.stored.SubmitID != submitID {
		return models.Result{}, gorm.ErrRecordNotFound
	}
	return *s.stored, nil
}

func (s *stubResultRepo) ListByEmail(ctx context.Context, email string) ([]models.Result, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.Result{*s.stored}, nil
}

func (s *stubResultRepo) ListAll(ctx context.Context) ([]models.Result, error) {
	return s.ListByEmail(ctx, "")
}

func (s *stubResultRepo) Create(ctx context.Context, result *models.Result) error {
	if s.createErr != nil {
		s.stored = s.raceWith
		return s.createErr
	}
	clone := *result
	s.stored = &clone
	return nil
}

type stubPublisher struct {
	published []dto.ResultResponse
	err       error
}

func (s *stubPublisher) PublishGraded(ctx context.Context, result dto.ResultResponse) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, result)
	return nil
}

func submittedFixture() (*stubSubmissionRepo, *stubExamRepo) {
	submissions := &stubSubmissionRepo{stored: models.Submission{
		SubmitID:  11,
		ExamID:    3,
		Email:     "jane@example.com",
		Questions: datatypes.JSON(`[{"title":"Q1","ans":"a"},{"title":"Q2","ans":"b"},{"title":"Q3","ans":"c"},{"title":"Q4","ans":"d"}]`),
		Answers:   datatypes.JSON(`["a","b","x",""]`),
		Status:    models.SubmissionStatusSubmitted,
	}}
	exams := &stubExamRepo{exam: models.Exam{
		ExamID:     3,
		Title:      "Basics",
		ExamType:   models.ExamTypeSingle,
		TotalMarks: 100,
		PassMark:   50,
	}}
	return submissions, exams
}

func newGradingService(submissions *stubSubmissionRepo, exams *stubExamRepo, results *stubResultRepo, publisher ResultPublisher) GradingService {
	return NewGradingService(submissions, exams, results, NewIDAllocator(&stubCounterRepo{}), publisher, nil, zerolog.Nop())
}

func TestGradingServiceGradesSubmission(t *testing.T) {
	submissions, exams := submittedFixture()
	results := &stubResultRepo{}
	publisher := &stubPublisher{}

	svc := newGradingService(submissions, exams, results, publisher)

	result, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.NoError(t, err)

	require.Equal(t, int64(1), result.ResultID)
	require.Equal(t, int64(11), result.SubmitID)
	require.Equal(t, 2, result.TotalRight)
	require.Equal(t, 1, result.TotalWrong)
	require.Equal(t, 1, result.TotalSkip)
	require.Equal(t, 3, result.TotalAnswered)
	require.Equal(t, 0.0, result.TotalNegativeMark)
	require.Equal(t, 50.0, result.ObtainMarks)
	require.Equal(t, models.ResultStatusPassed, result.Status)

	require.NotNil(t, results.stored)
	require.Len(t, publisher.published, 1)
}

func TestGradingServiceAppliesNegativeMarking(t *testing.T) {
	submissions, exams := submittedFixture()
	exams.exam.NegativeMarking = true
	exams.exam.NegativeMark = 25

	svc := newGradingService(submissions, exams, &stubResultRepo{}, nil)

	result, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, 0.25, result.TotalNegativeMark)
	require.Equal(t, 49.75, result.ObtainMarks)
	require.Equal(t, models.ResultStatusFailed, result.Status)
}

func TestGradingServiceIsIdempotent(t *testing.T) {
	submissions, exams := submittedFixture()
	results := &stubResultRepo{}

	svc := newGradingService(submissions, exams, results, nil)
	ctx := context.Background()

	first, err := svc.GradeSubmission(ctx, 3, "jane@example.com")
	require.NoError(t, err)

	second, err := svc.GradeSubmission(ctx, 3, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ResultID, second.ResultID, "re-grading must return the stored result, not a new one")
}

func TestGradingServiceRequiresSubmission(t *testing.T) {
	_, exams := submittedFixture()

	svc := newGradingService(&stubSubmissionRepo{}, exams, &stubResultRepo{}, nil)

	_, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradingServiceRequiresExam(t *testing.T) {
	submissions, _ := submittedFixture()

	svc := newGradingService(submissions, &stubExamRepo{}, &stubResultRepo{}, nil)

	_, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestGradingServiceRejectsInProgressSubmission(t *testing.T) {
	submissions, exams := submittedFixture()
	submissions.stored.Status = models.SubmissionStatusInProgress
	submissions.stored.Answers = nil

	svc := newGradingService(submissions, exams, &stubResultRepo{}, nil)

	_, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.ErrorIs(t, err, ErrSubmissionNotFinalized)
}

func TestGradingServiceRejectsInvalidPolicy(t *testing.T) {
	submissions, exams := submittedFixture()
	submissions.stored.Questions = datatypes.JSON(`[]`)
	exams.exam.Questions = nil

	svc := newGradingService(submissions, exams, &stubResultRepo{}, nil)

	_, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.ErrorIs(t, err, grading.ErrInvalidScoringPolicy)
}

func TestGradingServiceToleratesPublisherFailure(t *testing.T) {
	submissions, exams := submittedFixture()
	publisher := &stubPublisher{err: errors.New("nats down")}

	svc := newGradingService(submissions, exams, &stubResultRepo{}, publisher)

	result, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.NoError(t, err, "event publishing is best effort")
	require.Equal(t, models.ResultStatusPassed, result.Status)
}

func TestGradingServiceInvalidatesResultsCache(t *testing.T) {
	submissions, exams := submittedFixture()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, mr.Set(resultsCacheKey("jane@example.com"), `[]`))

	svc := NewGradingService(submissions, exams, &stubResultRepo{}, NewIDAllocator(&stubCounterRepo{}), nil, cache, zerolog.Nop())

	_, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.NoError(t, err)

	// The cached list view must not survive a fresh grade.
	require.False(t, mr.Exists(resultsCacheKey("jane@example.com")))
}

func TestGradingServiceReturnsWinnerOnCreateRace(t *testing.T) {
	submissions, exams := submittedFixture()
	winner := models.Result{ResultID: 99, SubmitID: 11, ExamID: 3, Email: "jane@example.com", Status: models.ResultStatusPassed}
	results := &stubResultRepo{createErr: errors.New("duplicate key"), raceWith: &winner}

	svc := newGradingService(submissions, exams, results, nil)

	result, err := svc.GradeSubmission(context.Background(), 3, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(99), result.ResultID)
}
