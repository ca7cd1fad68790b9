package service

import (
	"context"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"
)

// ProgramService 作者端的课程结构维护。所有写操作以读到的文档版本
// 做乐观校验，并发编辑冲突以 ConflictError 上抛而不是静默覆盖
type ProgramService struct {
	Programs *repository.ProgramRepository
	Factory  *ElementFactory
}

func NewProgramService(programs *repository.ProgramRepository, factory *ElementFactory) *ProgramService {
	return &ProgramService{Programs: programs, Factory: factory}
}

type CreateProgramRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	ImageURL        string   `json:"imageUrl"`
	TargetAudience  string   `json:"targetAudience"`
	Tags            []string `json:"tags"`
}

type UpdateProgramRequest struct {
	Version         int64     `json:"version" binding:"required"`
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	LongDescription *string   `json:"longDescription"`
	ImageURL        *string   `json:"imageUrl"`
	TargetAudience  *string   `json:"targetAudience"`
	Tags            *[]string `json:"tags"`
}

type WeekRequest struct {
	Version                      int64  `json:"version" binding:"required"`
	WeekNumber                   int    `json:"weekNumber" binding:"required"`
	Title                        string `json:"title" binding:"required"`
	Summary                      string `json:"summary"`
	SequentialCompletionRequired bool   `json:"sequentialCompletionRequired"`
}

// CreateProgram 由标题派生 slug 并保证全局唯一
func (s *ProgramService) CreateProgram(ctx context.Context, req CreateProgramRequest) (*model.Program, error) {
	slug := util.Slugify(req.Title)
	if slug == "" {
		return nil, model.NewValidationError("title", "title must contain at least one slug-safe character")
	}

	existing, err := s.Programs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrSlugTaken
	}

	now := time.Now()
	program := &model.Program{
		ID:              util.NewEntityID(),
		Slug:            slug,
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		ImageURL:        req.ImageURL,
		TargetAudience:  req.TargetAudience,
		Tags:            dedupeTags(req.Tags),
		Weeks:           []model.Week{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.Programs.Save(ctx, program, repository.VersionNew); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ProgramService) GetProgram(ctx context.Context, id string) (*model.Program, int64, error) {
	return s.Programs.FindByID(ctx, id)
}

func (s *ProgramService) ListPrograms(ctx context.Context) ([]model.Program, error) {
	return s.Programs.FindAll(ctx)
}

func (s *ProgramService) UpdateProgram(ctx context.Context, id string, req UpdateProgramRequest) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		program.Title = *req.Title
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.LongDescription != nil {
		program.LongDescription = *req.LongDescription
	}
	if req.ImageURL != nil {
		program.ImageURL = *req.ImageURL
	}
	if req.TargetAudience != nil {
		program.TargetAudience = *req.TargetAudience
	}
	if req.Tags != nil {
		program.Tags = dedupeTags(*req.Tags)
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, req.Version); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ProgramService) DeleteProgram(ctx context.Context, id string) error {
	return s.Programs.Delete(ctx, id)
}

// AddWeek 追加一周；插入后按 weekNumber 重排，周序号重复时拒绝
func (s *ProgramService) AddWeek(ctx context.Context, programID string, req WeekRequest) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	week := model.Week{
		ID:                           util.NewEntityID(),
		WeekNumber:                   req.WeekNumber,
		Title:                        req.Title,
		Summary:                      req.Summary,
		SequentialCompletionRequired: req.SequentialCompletionRequired,
		LearningElements:             []model.LearningElement{},
	}
	if err := program.InsertWeek(week); err != nil {
		return nil, err
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, req.Version); err != nil {
		return nil, err
	}
	return program, nil
}

type UpdateWeekRequest struct {
	Version                      int64   `json:"version" binding:"required"`
	Title                        *string `json:"title"`
	Summary                      *string `json:"summary"`
	SequentialCompletionRequired *bool   `json:"sequentialCompletionRequired"`
}

func (s *ProgramService) UpdateWeek(ctx context.Context, programID, weekID string, req UpdateWeekRequest) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	week := program.FindWeek(weekID)
	if week == nil {
		return nil, util.ErrWeekNotFound
	}
	if req.Title != nil {
		week.Title = *req.Title
	}
	if req.Summary != nil {
		week.Summary = *req.Summary
	}
	if req.SequentialCompletionRequired != nil {
		week.SequentialCompletionRequired = *req.SequentialCompletionRequired
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, req.Version); err != nil {
		return nil, err
	}
	return program, nil
}

// RemoveWeek 按 id 过滤删除，无其它级联副作用
func (s *ProgramService) RemoveWeek(ctx context.Context, programID, weekID string, version int64) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if !program.RemoveWeek(weekID) {
		return nil, util.ErrWeekNotFound
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, version); err != nil {
		return nil, err
	}
	return program, nil
}

// AddElement 向指定周追加已成型的元素；id 留空时补发
func (s *ProgramService) AddElement(ctx context.Context, programID, weekID string, version int64, el model.LearningElement) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	week := program.FindWeek(weekID)
	if week == nil {
		return nil, util.ErrWeekNotFound
	}
	if el.ID == "" {
		el.ID = util.NewEntityID()
	}
	if err := week.AddElement(el); err != nil {
		return nil, err
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, version); err != nil {
		return nil, err
	}
	return program, nil
}

// AddPlaceholder 经工厂追加占位元素；未知变体降级为 text_content
func (s *ProgramService) AddPlaceholder(ctx context.Context, programID, weekID string, version int64, tag model.ElementType) (*model.Program, error) {
	return s.AddElement(ctx, programID, weekID, version, s.Factory.Placeholder(tag))
}

func (s *ProgramService) UpdateElement(ctx context.Context, programID, weekID string, version int64, el model.LearningElement) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	week := program.FindWeek(weekID)
	if week == nil {
		return nil, util.ErrWeekNotFound
	}
	existing := week.FindElement(el.ID)
	if existing == nil {
		return nil, util.ErrElementNotFound
	}
	*existing = el
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, version); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ProgramService) RemoveElement(ctx context.Context, programID, weekID, elementID string, version int64) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	week := program.FindWeek(weekID)
	if week == nil {
		return nil, util.ErrWeekNotFound
	}
	if !week.RemoveElement(elementID) {
		return nil, util.ErrElementNotFound
	}
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, version); err != nil {
		return nil, err
	}
	return program, nil
}

// AttachCompanyDocument 挂接企业定制文档（文件已经存储服务落盘，入参为 URL）
func (s *ProgramService) AttachCompanyDocument(ctx context.Context, programID string, version int64, title, url string) (*model.Program, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	program.CompanySpecificDocuments = append(program.CompanySpecificDocuments, model.CompanyDocument{
		ID:    util.NewEntityID(),
		Title: title,
		URL:   url,
	})
	program.UpdatedAt = time.Now()

	if _, err := s.Programs.Save(ctx, program, version); err != nil {
		return nil, err
	}
	return program, nil
}

func dedupeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
