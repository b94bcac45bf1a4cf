package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/sandbox"
)

// SandboxService owns the SQL exercise flow: task management, raw execution
// and grading. Grading runs the user's code and the stored reference solution
// through the same executor and compares the serialized row sets.
type SandboxService struct {
	taskRepo repository.SandboxTaskRepository
	subRepo  repository.SandboxSubmissionRepository
	runner   sandbox.Executor
	logger   *zap.Logger
}

func NewSandboxService(
	taskRepo repository.SandboxTaskRepository,
	subRepo repository.SandboxSubmissionRepository,
	runner sandbox.Executor,
	logger *zap.Logger,
) *SandboxService {
	return &SandboxService{
		taskRepo: taskRepo,
		subRepo:  subRepo,
		runner:   runner,
		logger:   logger,
	}
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	InitialCode *string  `json:"initialCode"`
	Solution    string   `json:"solution"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

func (r CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Language, validation.Required),
		validation.Field(&r.Solution, validation.Required),
		validation.Field(&r.Difficulty, validation.Required, validation.In(
			string(model.DifficultyEasy), string(model.DifficultyMedium), string(model.DifficultyHard))),
		validation.Field(&r.Tags, validation.Required),
	)
}

// UpdateTaskRequest carries partial updates: nil fields keep prior values.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	InitialCode *string  `json:"initialCode"`
	Solution    *string  `json:"solution"`
	Difficulty  *string  `json:"difficulty"`
	Tags        []string `json:"tags"`
}

func (r UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Difficulty, validation.NilOrNotEmpty, validation.In(
			string(model.DifficultyEasy), string(model.DifficultyMedium), string(model.DifficultyHard))),
	)
}

func (s *SandboxService) CreateTask(ctx context.Context, req CreateTaskRequest) (*model.SandboxTask, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ErrValidation
	}

	now := time.Now().UTC()
	task := &model.SandboxTask{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		InitialCode: req.InitialCode,
		Solution:    req.Solution,
		Difficulty:  model.TaskDifficulty(req.Difficulty),
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The solution is not executed here: authoring-time validation does not
	// exist, bad solutions surface at grading time as ErrSolutionFailed.
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *SandboxService) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*model.SandboxTask, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ErrValidation
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Language != nil {
		task.Language = *req.Language
	}
	if req.InitialCode != nil {
		task.InitialCode = req.InitialCode
	}
	if req.Solution != nil {
		task.Solution = *req.Solution
	}
	if req.Difficulty != nil {
		task.Difficulty = model.TaskDifficulty(*req.Difficulty)
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *SandboxService) GetTask(ctx context.Context, id string) (*model.SandboxTask, error) {
	return s.taskRepo.FindByID(ctx, id)
}

func (s *SandboxService) DeleteTask(ctx context.Context, id string) error {
	// Submissions go with the task via ON DELETE CASCADE.
	return s.taskRepo.Delete(ctx, id)
}

// ListTasks returns all tasks annotated with their derived status. The status
// is "any correct submission ever", so a solved task stays solved no matter
// what is submitted afterwards.
func (s *SandboxService) ListTasks(ctx context.Context) ([]model.SandboxTask, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.subRepo.StatsByTask(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		tasks[i].Status = stats[tasks[i].ID].Status()
	}
	return tasks, nil
}

// Execute runs code without grading and without persistence, for iterating
// before a submission. Success or the driver's error text comes back as data.
func (s *SandboxService) Execute(ctx context.Context, code string) *sandbox.QueryResult {
	return s.runner.Execute(ctx, code)
}

// SubmitResult is the grading verdict. Exactly one of ExecError or Result is
// meaningful: a user-side execution error carries no verdict and no rows.
type SubmitResult struct {
	IsCorrect bool
	Result    *sandbox.RowSet
	ExecError string
}

// Submit grades one attempt. The user's code and the task's stored solution
// run sequentially through the same unrestricted executor; a failure on
// either side aborts before anything is persisted. Only when both executions
// succeed is a submission row written, whatever the verdict.
func (s *SandboxService) Submit(ctx context.Context, taskID, code string) (*SubmitResult, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	userResult := s.runner.Execute(ctx, code)
	if userResult.Failed() {
		return &SubmitResult{ExecError: userResult.Err}, nil
	}

	solutionResult := s.runner.Execute(ctx, task.Solution)
	if solutionResult.Failed() {
		// The reference solution no longer runs against the current schema:
		// a data problem, not a user mistake. Distinguished in logs so it
		// can be alerted on separately from ordinary grading traffic.
		s.logger.Error("task solution failed to execute",
			zap.String("task_id", taskID),
			zap.String("error_message", solutionResult.Err),
		)
		return nil, common.ErrSolutionFailed
	}

	isCorrect := sandbox.Equal(userResult.Rows, solutionResult.Rows)

	submission := &model.SandboxSubmission{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Code:      code,
		IsCorrect: isCorrect,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.subRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	return &SubmitResult{IsCorrect: isCorrect, Result: userResult.Rows}, nil
}
