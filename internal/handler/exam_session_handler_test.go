package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
	"github.com/assessly-platform/assessly-api/internal/service"
	"github.com/assessly-platform/assessly-api/internal/utils"
)

func setupExamSessionApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Counter{},
		&models.Exam{},
		&models.Submission{},
		&models.Result{},
	))

	counters := repository.NewCounterRepository(db)
	require.NoError(t, counters.Ensure(context.Background()))

	allocator := service.NewIDAllocator(counters)
	submissions := repository.NewSubmissionRepository(db)
	exams := repository.NewExamRepository(db)
	results := repository.NewResultRepository(db)

	grader := service.NewGradingService(submissions, exams, results, allocator, nil, nil, zerolog.Nop())
	svc := service.NewSubmissionService(submissions, exams, grader, allocator, validator.New(), zerolog.Nop())

	app := fiber.New()
	NewExamSessionHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1"))
	return app, db
}

func seedExam(t *testing.T, db *gorm.DB, exam models.Exam) {
	t.Helper()
	require.NoError(t, db.Create(&exam).Error)
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, utils.APIResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func decodeData(t *testing.T, envelope utils.APIResponse, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestExamSessionFlow(t *testing.T) {
	app, db := setupExamSessionApp(t)

	seedExam(t, db, models.Exam{
		ExamID:     1,
		Title:      "Basics",
		ExamType:   models.ExamTypeSingle,
		TotalMarks: 100,
		PassMark:   50,
		Questions:  datatypes.JSON(`[{"title":"Q1","ans":"a"},{"title":"Q2","ans":"b"},{"title":"Q3","ans":"c"},{"title":"Q4","ans":"d"}]`),
	})

	resp, envelope := postJSON(t, app, "/api/v1/exam/start", dto.ExamStartRequest{ExamID: 1, Email: "jane@example.com"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	var started dto.SubmissionResponse
	decodeData(t, envelope, &started)
	require.Equal(t, int64(1), started.SubmitID)
	require.Equal(t, models.SubmissionStatusInProgress, started.Status)
	require.Len(t, started.Questions, 4)

	// Starting again returns the same attempt.
	resp, envelope = postJSON(t, app, "/api/v1/exam/start", dto.ExamStartRequest{ExamID: 1, Email: "jane@example.com"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var restarted dto.SubmissionResponse
	decodeData(t, envelope, &restarted)
	require.Equal(t, started.SubmitID, restarted.SubmitID)

	resp, envelope = postJSON(t, app, "/api/v1/exam/submit", dto.ExamSubmitRequest{
		ExamID:  1,
		Email:   "jane@example.com",
		Answers: []string{"A", "b", "x", ""},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	var result dto.ResultResponse
	decodeData(t, envelope, &result)
	require.Equal(t, started.SubmitID, result.SubmitID)
	require.Equal(t, 2, result.TotalRight)
	require.Equal(t, 1, result.TotalWrong)
	require.Equal(t, 1, result.TotalSkip)
	require.Equal(t, 50.0, result.ObtainMarks)
	require.Equal(t, models.ResultStatusPassed, result.Status)

	// A retried submit must not grade again.
	resp, envelope = postJSON(t, app, "/api/v1/exam/submit", dto.ExamSubmitRequest{
		ExamID:  1,
		Email:   "jane@example.com",
		Answers: []string{"a", "b", "c", "d"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var repeated dto.ResultResponse
	decodeData(t, envelope, &repeated)
	require.Equal(t, result.ResultID, repeated.ResultID)
	require.Equal(t, result.ObtainMarks, repeated.ObtainMarks)

	var count int64
	require.NoError(t, db.Model(&models.Result{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestExamSessionOversizedSubmitLeavesAttemptRetryable(t *testing.T) {
	app, db := setupExamSessionApp(t)

	seedExam(t, db, models.Exam{
		ExamID:     1,
		Title:      "Basics",
		ExamType:   models.ExamTypeSingle,
		TotalMarks: 100,
		PassMark:   50,
		Questions:  datatypes.JSON(`[{"title":"Q1","ans":"a"},{"title":"Q2","ans":"b"}]`),
	})

	resp, _ := postJSON(t, app, "/api/v1/exam/start", dto.ExamStartRequest{ExamID: 1, Email: "jane@example.com"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// More answers than questions is rejected before the attempt is touched.
	resp, envelope := postJSON(t, app, "/api/v1/exam/submit", dto.ExamSubmitRequest{
		ExamID:  1,
		Email:   "jane@example.com",
		Answers: []string{"a", "b", "c"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, envelope.Success)

	var stored models.Submission
	require.NoError(t, db.Where("exam_id = ? AND email = ?", 1, "jane@example.com").First(&stored).Error)
	require.Equal(t, models.SubmissionStatusInProgress, stored.Status)
	require.Empty(t, stored.Answers)

	// A corrected retry still goes through and grades.
	resp, envelope = postJSON(t, app, "/api/v1/exam/submit", dto.ExamSubmitRequest{
		ExamID:  1,
		Email:   "jane@example.com",
		Answers: []string{"a", "b"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.ResultResponse
	decodeData(t, envelope, &result)
	require.Equal(t, 2, result.TotalRight)
	require.Equal(t, 100.0, result.ObtainMarks)
	require.Equal(t, models.ResultStatusPassed, result.Status)
}

func TestExamSessionStartResponseHidesAnswerKey(t *testing.T) {
	app, db := setupExamSessionApp(t)

	seedExam(t, db, models.Exam{
		ExamID:     1,
		Title:      "Basics",
		ExamType:   models.ExamTypeSingle,
		TotalMarks: 10,
		Questions:  datatypes.JSON(`[{"title":"Q1","options":["a","b"],"ans":"a"}]`),
	})

	body, err := json.Marshal(dto.ExamStartRequest{ExamID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/v1/exam/start", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(raw), `"ans"`)
}

func TestExamSessionStartUnknownExam(t *testing.T) {
	app, _ := setupExamSessionApp(t)

	resp, envelope := postJSON(t, app, "/api/v1/exam/start", dto.ExamStartRequest{ExamID: 42, Email: "jane@example.com"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.False(t, envelope.Success)
}

func TestExamSessionSubmitWithoutStart(t *testing.T) {
	app, _ := setupExamSessionApp(t)

	resp, _ := postJSON(t, app, "/api/v1/exam/submit", dto.ExamSubmitRequest{
		ExamID:  1,
		Email:   "jane@example.com",
		Answers: []string{"a"},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestExamSessionStartValidation(t *testing.T) {
	app, _ := setupExamSessionApp(t)

	resp, _ := postJSON(t, app, "/api/v1/exam/start", dto.ExamStartRequest{ExamID: 1, Email: "not-an-email"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
