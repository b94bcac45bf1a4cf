package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/sandbox"
)

type stubExecutor struct {
	results map[string]*sandbox.QueryResult
}

func (s *stubExecutor) Execute(_ context.Context, code string) *sandbox.QueryResult {
	if res, ok := s.results[code]; ok {
		return res
	}
	return &sandbox.QueryResult{Err: `ERROR: relation "missing" does not exist (SQLSTATE 42P01)`}
}

type stubTaskRepo struct {
	task *model.SandboxTask
}

func (r *stubTaskRepo) Create(context.Context, *model.SandboxTask) error { return nil }
func (r *stubTaskRepo) Update(context.Context, *model.SandboxTask) error { return nil }
func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*model.SandboxTask, error) {
	if r.task == nil || r.task.ID != id {
		return nil, common.ErrNotFound
	}
	return r.task, nil
}
func (r *stubTaskRepo) List(context.Context) ([]model.SandboxTask, error) {
	if r.task == nil {
		return []model.SandboxTask{}, nil
	}
	return []model.SandboxTask{*r.task}, nil
}
func (r *stubTaskRepo) Delete(context.Context, string) error { return nil }
func (r *stubTaskRepo) DeleteAll(context.Context) error      { return nil }

type stubSubmissionRepo struct {
	created []*model.SandboxSubmission
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *model.SandboxSubmission) error {
	r.created = append(r.created, s)
	return nil
}
func (r *stubSubmissionRepo) ListByTask(context.Context, string) ([]model.SandboxSubmission, error) {
	return []model.SandboxSubmission{}, nil
}
func (r *stubSubmissionRepo) StatsByTask(context.Context) (map[string]model.TaskSubmissionStats, error) {
	return map[string]model.TaskSubmissionStats{}, nil
}
func (r *stubSubmissionRepo) StatsForTask(_ context.Context, taskID string) (model.TaskSubmissionStats, error) {
	return model.TaskSubmissionStats{TaskID: taskID}, nil
}

func newSandboxTestRouter(executor sandbox.Executor, taskRepo *stubTaskRepo, subRepo *stubSubmissionRepo) http.Handler {
	svc := service.NewSandboxService(taskRepo, subRepo, executor, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/sandbox", NewSandboxHandler(svc).RegisterRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExecuteRequiresCode(t *testing.T) {
	router := newSandboxTestRouter(&stubExecutor{}, &stubTaskRepo{}, &stubSubmissionRepo{})

	rec := postJSON(t, router, "/sandbox/execute", map[string]string{"code": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Code is required", body["error"])
}

func TestExecuteReturnsDriverErrorVerbatim(t *testing.T) {
	router := newSandboxTestRouter(&stubExecutor{}, &stubTaskRepo{}, &stubSubmissionRepo{})

	rec := postJSON(t, router, "/sandbox/execute", map[string]string{"code": "SELECT * FROM missing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, `ERROR: relation "missing" does not exist (SQLSTATE 42P01)`, body["error"])
}

func TestExecuteReturnsRows(t *testing.T) {
	executor := &stubExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT 1 AS n": {Rows: &sandbox.RowSet{
			Columns: []string{"n"},
			Rows:    [][]interface{}{{int64(1)}},
		}},
	}}
	router := newSandboxTestRouter(executor, &stubTaskRepo{}, &stubSubmissionRepo{})

	rec := postJSON(t, router, "/sandbox/execute", map[string]string{"code": "SELECT 1 AS n"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":[{"n":1}]}`, rec.Body.String())
}

func TestSubmitUnknownTaskIs404(t *testing.T) {
	router := newSandboxTestRouter(&stubExecutor{}, &stubTaskRepo{}, &stubSubmissionRepo{})

	rec := postJSON(t, router, "/sandbox/tasks/nope/submit", map[string]string{"code": "SELECT 1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitReturnsVerdict(t *testing.T) {
	rows := &sandbox.RowSet{Columns: []string{"n"}, Rows: [][]interface{}{{int64(1)}}}
	executor := &stubExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT 1 AS n": {Rows: rows},
	}}
	taskRepo := &stubTaskRepo{task: &model.SandboxTask{
		ID:       "t1",
		Title:    "One",
		Solution: "SELECT 1 AS n",
	}}
	subRepo := &stubSubmissionRepo{}
	router := newSandboxTestRouter(executor, taskRepo, subRepo)

	rec := postJSON(t, router, "/sandbox/tasks/t1/submit", map[string]string{"code": "SELECT 1 AS n"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isCorrect":true,"result":[{"n":1}]}`, rec.Body.String())
	assert.Len(t, subRepo.created, 1)
}

func TestSubmitSolutionFailureIs500(t *testing.T) {
	executor := &stubExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT 1": {Rows: &sandbox.RowSet{Columns: []string{"?column?"}, Rows: [][]interface{}{{int64(1)}}}},
	}}
	taskRepo := &stubTaskRepo{task: &model.SandboxTask{
		ID:       "t1",
		Solution: "SELECT * FROM missing",
	}}
	subRepo := &stubSubmissionRepo{}
	router := newSandboxTestRouter(executor, taskRepo, subRepo)

	rec := postJSON(t, router, "/sandbox/tasks/t1/submit", map[string]string{"code": "SELECT 1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error in task solution", body["error"])
	assert.Empty(t, subRepo.created)
}

func TestSubmitUserErrorIs400(t *testing.T) {
	taskRepo := &stubTaskRepo{task: &model.SandboxTask{
		ID:       "t1",
		Solution: "SELECT 1",
	}}
	subRepo := &stubSubmissionRepo{}
	router := newSandboxTestRouter(&stubExecutor{}, taskRepo, subRepo)

	rec := postJSON(t, router, "/sandbox/tasks/t1/submit", map[string]string{"code": "garbage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, subRepo.created)
}
