package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/sandbox"
)

// fakeExecutor maps code verbatim to a canned result. Unknown code fails the
// way a bad query would.
type fakeExecutor struct {
	results map[string]*sandbox.QueryResult
	calls   []string
}

func (f *fakeExecutor) Execute(_ context.Context, code string) *sandbox.QueryResult {
	f.calls = append(f.calls, code)
	if res, ok := f.results[code]; ok {
		return res
	}
	return &sandbox.QueryResult{Err: `syntax error at or near "` + code + `"`}
}

type fakeTaskRepo struct {
	tasks map[string]*model.SandboxTask
	order []string
}

func newFakeTaskRepo(tasks ...*model.SandboxTask) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: map[string]*model.SandboxTask{}}
	for _, t := range tasks {
		r.tasks[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *fakeTaskRepo) Create(_ context.Context, t *model.SandboxTask) error {
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *model.SandboxTask) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return common.ErrNotFound
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*model.SandboxTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) List(_ context.Context) ([]model.SandboxTask, error) {
	out := []model.SandboxTask{}
	for _, id := range r.order {
		out = append(out, *r.tasks[id])
	}
	return out, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteAll(_ context.Context) error {
	r.tasks = map[string]*model.SandboxTask{}
	r.order = nil
	return nil
}

type fakeSubmissionRepo struct {
	created []*model.SandboxSubmission
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *model.SandboxSubmission) error {
	r.created = append(r.created, s)
	return nil
}

func (r *fakeSubmissionRepo) ListByTask(_ context.Context, taskID string) ([]model.SandboxSubmission, error) {
	out := []model.SandboxSubmission{}
	for _, s := range r.created {
		if s.TaskID == taskID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) StatsByTask(_ context.Context) (map[string]model.TaskSubmissionStats, error) {
	stats := map[string]model.TaskSubmissionStats{}
	for _, s := range r.created {
		st := stats[s.TaskID]
		st.TaskID = s.TaskID
		st.Total++
		if s.IsCorrect {
			st.Correct++
		}
		stats[s.TaskID] = st
	}
	return stats, nil
}

func (r *fakeSubmissionRepo) StatsForTask(_ context.Context, taskID string) (model.TaskSubmissionStats, error) {
	all, _ := r.StatsByTask(context.Background())
	st := all[taskID]
	st.TaskID = taskID
	return st, nil
}

func usersRowSet() *sandbox.RowSet {
	return &sandbox.RowSet{
		Columns: []string{"id", "name"},
		Rows:    [][]interface{}{{int64(1), "Alice"}, {int64(2), "Bob"}},
	}
}

func newTestService(runner sandbox.Executor, taskRepo *fakeTaskRepo, subRepo *fakeSubmissionRepo) *SandboxService {
	return NewSandboxService(taskRepo, subRepo, runner, zap.NewNop())
}

func demoTask(id string) *model.SandboxTask {
	return &model.SandboxTask{
		ID:          id,
		Title:       "Select everything from users",
		Description: "Select all rows.",
		Language:    "sql",
		Solution:    "SELECT * FROM users",
		Difficulty:  model.DifficultyEasy,
		Tags:        model.StringList{"SELECT"},
	}
}

func TestSubmitCorrect(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT id, name FROM users": {Rows: usersRowSet()},
		"SELECT * FROM users":        {Rows: usersRowSet()},
	}}
	taskRepo := newFakeTaskRepo(demoTask("t1"))
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, taskRepo, subRepo)

	verdict, err := svc.Submit(context.Background(), "t1", "SELECT id, name FROM users")
	require.NoError(t, err)

	assert.True(t, verdict.IsCorrect)
	assert.Empty(t, verdict.ExecError)
	assert.Equal(t, usersRowSet().Columns, verdict.Result.Columns)

	require.Len(t, subRepo.created, 1)
	assert.Equal(t, "t1", subRepo.created[0].TaskID)
	assert.Equal(t, "SELECT id, name FROM users", subRepo.created[0].Code)
	assert.True(t, subRepo.created[0].IsCorrect)
}

func TestSubmitIncorrectStillPersisted(t *testing.T) {
	reversed := &sandbox.RowSet{
		Columns: []string{"id", "name"},
		Rows:    [][]interface{}{{int64(2), "Bob"}, {int64(1), "Alice"}},
	}
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT * FROM users ORDER BY id DESC": {Rows: reversed},
		"SELECT * FROM users":                  {Rows: usersRowSet()},
	}}
	taskRepo := newFakeTaskRepo(demoTask("t1"))
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, taskRepo, subRepo)

	verdict, err := svc.Submit(context.Background(), "t1", "SELECT * FROM users ORDER BY id DESC")
	require.NoError(t, err)

	// Same rows in a different order grade as incorrect.
	assert.False(t, verdict.IsCorrect)
	require.Len(t, subRepo.created, 1)
	assert.False(t, subRepo.created[0].IsCorrect)
}

func TestSubmitUserErrorSkipsPersistence(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT * FROM users": {Rows: usersRowSet()},
	}}
	taskRepo := newFakeTaskRepo(demoTask("t1"))
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, taskRepo, subRepo)

	verdict, err := svc.Submit(context.Background(), "t1", "SELEC broken")
	require.NoError(t, err)

	assert.NotEmpty(t, verdict.ExecError)
	assert.Nil(t, verdict.Result)
	assert.Empty(t, subRepo.created)

	// The solution never ran: the user's failure short-circuits grading.
	assert.Equal(t, []string{"SELEC broken"}, runner.calls)
}

func TestSubmitSolutionFailure(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT 1": {Rows: &sandbox.RowSet{Columns: []string{"?column?"}, Rows: [][]interface{}{{int64(1)}}}},
	}}
	task := demoTask("t1")
	task.Solution = "SELECT * FROM dropped_table"
	taskRepo := newFakeTaskRepo(task)
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, taskRepo, subRepo)

	verdict, err := svc.Submit(context.Background(), "t1", "SELECT 1")
	require.ErrorIs(t, err, common.ErrSolutionFailed)
	assert.Nil(t, verdict)
	assert.Empty(t, subRepo.created)
}

func TestSubmitUnknownTask(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{}}
	svc := newTestService(runner, newFakeTaskRepo(), &fakeSubmissionRepo{})

	_, err := svc.Submit(context.Background(), "missing", "SELECT 1")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, runner.calls)
}

func TestSubmitIsDeterministic(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT id, name FROM users": {Rows: usersRowSet()},
		"SELECT * FROM users":        {Rows: usersRowSet()},
	}}
	taskRepo := newFakeTaskRepo(demoTask("t1"))
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, taskRepo, subRepo)

	for i := 0; i < 3; i++ {
		verdict, err := svc.Submit(context.Background(), "t1", "SELECT id, name FROM users")
		require.NoError(t, err)
		assert.True(t, verdict.IsCorrect)
	}
	assert.Len(t, subRepo.created, 3)
}

func TestListTasksDerivesStatus(t *testing.T) {
	solved := demoTask("solved")
	attempted := demoTask("attempted")
	fresh := demoTask("fresh")
	taskRepo := newFakeTaskRepo(solved, attempted, fresh)

	subRepo := &fakeSubmissionRepo{created: []*model.SandboxSubmission{
		{ID: "s1", TaskID: "solved", IsCorrect: true},
		{ID: "s2", TaskID: "solved", IsCorrect: false},
		{ID: "s3", TaskID: "attempted", IsCorrect: false},
	}}

	svc := newTestService(&fakeExecutor{}, taskRepo, subRepo)
	tasks, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	byID := map[string]model.TaskStatus{}
	for _, task := range tasks {
		byID[task.ID] = task.Status
	}
	// One correct submission ever keeps the task solved, later wrong
	// attempts notwithstanding.
	assert.Equal(t, model.StatusSolved, byID["solved"])
	assert.Equal(t, model.StatusAttempted, byID["attempted"])
	assert.Equal(t, model.StatusNotStarted, byID["fresh"])
}

func TestExecuteDoesNotPersist(t *testing.T) {
	runner := &fakeExecutor{results: map[string]*sandbox.QueryResult{
		"SELECT * FROM users": {Rows: usersRowSet()},
	}}
	subRepo := &fakeSubmissionRepo{}
	svc := newTestService(runner, newFakeTaskRepo(), subRepo)

	result := svc.Execute(context.Background(), "SELECT * FROM users")
	require.False(t, result.Failed())
	assert.Empty(t, subRepo.created)

	failed := svc.Execute(context.Background(), "DROP bad syntax")
	assert.True(t, failed.Failed())
	assert.Empty(t, subRepo.created)
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTestService(&fakeExecutor{}, newFakeTaskRepo(), &fakeSubmissionRepo{})

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:       "Missing bits",
		Description: "No solution or difficulty.",
		Language:    "sql",
		Tags:        []string{"SELECT"},
	})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:       "Bad difficulty",
		Description: "d",
		Language:    "sql",
		Solution:    "SELECT 1",
		Difficulty:  "impossible",
		Tags:        []string{"SELECT"},
	})
	require.ErrorIs(t, err, common.ErrValidation)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:       "Valid",
		Description: "d",
		Language:    "sql",
		Solution:    "SELECT 1",
		Difficulty:  "medium",
		Tags:        []string{"SELECT"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.DifficultyMedium, task.Difficulty)
}

func TestUpdateTaskPartial(t *testing.T) {
	taskRepo := newFakeTaskRepo(demoTask("t1"))
	svc := newTestService(&fakeExecutor{}, taskRepo, &fakeSubmissionRepo{})

	newTitle := "Renamed"
	updated, err := svc.UpdateTask(context.Background(), "t1", UpdateTaskRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	// Untouched fields keep their prior values.
	assert.Equal(t, "SELECT * FROM users", updated.Solution)
	assert.Equal(t, model.DifficultyEasy, updated.Difficulty)
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc := newTestService(&fakeExecutor{}, newFakeTaskRepo(), &fakeSubmissionRepo{})

	newTitle := "Renamed"
	_, err := svc.UpdateTask(context.Background(), "missing", UpdateTaskRequest{Title: &newTitle})
	require.ErrorIs(t, err, common.ErrNotFound)
}
