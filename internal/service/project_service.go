package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"clienttrack/internal/cache"
	"clienttrack/internal/errors"
	"clienttrack/internal/model"
	"clienttrack/internal/repository"
)

// ProjectInput carries the mutable project fields from a form submission.
// Value defaults to zero and Deadline to nil when the form left them empty.
type ProjectInput struct {
	Name        string
	Description string
	Value       decimal.Decimal
	Status      string
	Importance  string
	Deadline    *time.Time
}

// ProjectService handles project CRUD for the acting user. Ownership of the
// target client is re-verified on every write.
type ProjectService interface {
	Get(ctx context.Context, userID, projectID uint) (*model.Project, error)
	ListForClient(ctx context.Context, userID, clientID uint) ([]model.Project, error)
	Create(ctx context.Context, userID, clientID uint, in ProjectInput) (*model.Project, error)
	Update(ctx context.Context, userID, projectID uint, in ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, userID, projectID uint) error
}

type projectService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	cache       *cache.Client
}

// NewProjectService creates a new project service.
func NewProjectService(clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, cache *cache.Client) ProjectService {
	return &projectService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		cache:       cache,
	}
}

func (s *projectService) Get(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, userID, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListForClient(ctx context.Context, userID, clientID uint) ([]model.Project, error) {
	return s.projectRepo.ListByClient(ctx, userID, clientID)
}

// Create attaches a project to one of the user's clients. A client id that
// does not resolve under this user reads as not found, the same as a
// nonexistent one.
func (s *projectService) Create(ctx context.Context, userID, clientID uint, in ProjectInput) (*model.Project, error) {
	if clientID == 0 {
		return nil, errors.ErrClientRequired
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.ErrNameRequired
	}

	if _, err := s.clientRepo.FindByID(ctx, userID, clientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, fmt.Errorf("verify client: %w", err)
	}

	project := &model.Project{
		ClientID:    clientID,
		Name:        in.Name,
		Description: in.Description,
		Value:       in.Value,
		Status:      in.Status,
		Importance:  model.ProjectImportance(in.Importance),
		Deadline:    in.Deadline,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	_ = s.cache.Delete(ctx, revenueCacheKey(userID))
	return project, nil
}

func (s *projectService) Update(ctx context.Context, userID, projectID uint, in ProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.ErrNameRequired
	}

	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project.Name = in.Name
	project.Description = in.Description
	project.Value = in.Value
	project.Status = in.Status
	project.Importance = model.ProjectImportance(in.Importance)
	project.Deadline = in.Deadline

	if err := s.projectRepo.Update(ctx, userID, project); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	_ = s.cache.Delete(ctx, revenueCacheKey(userID))
	return project, nil
}

// Delete removes a project. A project owned through another user's client
// is a no-op.
func (s *projectService) Delete(ctx context.Context, userID, projectID uint) error {
	if err := s.projectRepo.Delete(ctx, userID, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	_ = s.cache.Delete(ctx, revenueCacheKey(userID))
	return nil
}
