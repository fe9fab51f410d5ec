package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clienttrack/internal/model"
)

// Project sort keys accepted by ListByUser. Anything else falls back to
// the deadline ordering.
const (
	SortDeadline   = "deadline"
	SortImportance = "importance"
	SortClient     = "client"
	SortValue      = "value"
)

// ProjectRepository defines persistence operations for projects. Ownership
// is resolved through the owning client on every read and write; a project
// whose client belongs to another user behaves as if it did not exist.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, userID uint, project *model.Project) error
	FindByID(ctx context.Context, userID, projectID uint) (*model.Project, error)
	ListByClient(ctx context.Context, userID, clientID uint) ([]model.Project, error)
	ListByUser(ctx context.Context, userID uint, sortKey string) ([]model.ProjectSummary, error)
	SumValueByUser(ctx context.Context, userID uint) (decimal.Decimal, error)
	Delete(ctx context.Context, userID, projectID uint) error
}

type projectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB, logger *zap.Logger) ProjectRepository {
	return &projectRepository{db: db, logger: logger}
}

// ownedClientIDs is the subquery every project read and write filters
// against: the ids of the clients belonging to the acting user.
func (r *projectRepository) ownedClientIDs(userID uint) *gorm.DB {
	return r.db.Model(&model.Client{}).Select("id").Where("user_id = ?", userID)
}

// joinOwner joins projects to their owning client and filters by user.
func joinOwner(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN clients ON clients.id = projects.client_id").
			Where("clients.user_id = ?", userID)
	}
}

// orderClause maps a sort key to its SQL ordering. MySQL has no NULLS LAST,
// so the deadline ordering sorts the IS NULL flag first. The trailing id
// keeps ties deterministic.
func orderClause(sortKey string) string {
	switch sortKey {
	case SortImportance:
		return "CASE projects.importance WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 3 ELSE 4 END, projects.id ASC"
	case SortClient:
		return "clients.name ASC, projects.id ASC"
	case SortValue:
		return "projects.value DESC, projects.id ASC"
	default:
		return "projects.deadline IS NULL, projects.deadline ASC, projects.id ASC"
	}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		r.logger.Error("create project failed", zap.Uint("client_id", project.ClientID), zap.Error(err))
		return err
	}
	r.logger.Info("project created", zap.Uint("id", project.ID), zap.Uint("client_id", project.ClientID))
	return nil
}

func (r *projectRepository) Update(ctx context.Context, userID uint, project *model.Project) error {
	// Updates only the mutable columns; client_id is never written.
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND client_id IN (?)", project.ID, r.ownedClientIDs(userID)).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"value":       project.Value,
			"status":      project.Status,
			"importance":  project.Importance,
			"deadline":    project.Deadline,
		})
	if res.Error != nil {
		r.logger.Error("update project failed", zap.Uint("id", project.ID), zap.Error(res.Error))
		return res.Error
	}
	// MySQL reports zero affected rows for a value-identical update, so
	// RowsAffected cannot stand in for a not-found check here. Ownership is
	// enforced by the subquery predicate and the caller's preceding read.
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id IN (?)", projectID, r.ownedClientIDs(userID)).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByClient(ctx context.Context, userID, clientID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND client_id IN (?)", clientID, r.ownedClientIDs(userID)).
		Order("deadline IS NULL, deadline ASC, id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID uint, sortKey string) ([]model.ProjectSummary, error) {
	var summaries []model.ProjectSummary
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("projects.*, clients.name AS client_name").
		Scopes(joinOwner(userID)).
		Order(orderClause(sortKey)).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *projectRepository) SumValueByUser(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("COALESCE(SUM(projects.value), 0)").
		Scopes(joinOwner(userID)).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *projectRepository) Delete(ctx context.Context, userID, projectID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND client_id IN (?)", projectID, r.ownedClientIDs(userID)).
		Delete(&model.Project{})
	if res.Error != nil {
		r.logger.Error("delete project failed", zap.Uint("id", projectID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected > 0 {
		r.logger.Info("project deleted", zap.Uint("id", projectID), zap.Uint("user_id", userID))
	}
	return nil
}
