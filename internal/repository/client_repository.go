package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clienttrack/internal/model"
)

// ClientRepository defines persistence operations for clients. Every read
// and write is scoped to the acting user's rows; there is no unscoped path.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, userID uint, client *model.Client) error
	FindByID(ctx context.Context, userID, clientID uint) (*model.Client, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Client, error)
	// Delete removes the client and all of its projects in one transaction.
	// A client owned by another user is a no-op, not an error.
	Delete(ctx context.Context, userID, clientID uint) error
}

type clientRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClientRepository creates a new client repository.
func NewClientRepository(db *gorm.DB, logger *zap.Logger) ClientRepository {
	return &clientRepository{db: db, logger: logger}
}

// owned scopes a query to the clients of a single user. All client reads
// and writes go through this filter.
func owned(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("clients.user_id = ?", userID)
	}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		r.logger.Error("create client failed", zap.Uint("user_id", client.UserID), zap.Error(err))
		return err
	}
	r.logger.Info("client created", zap.Uint("id", client.ID), zap.Uint("user_id", client.UserID))
	return nil
}

func (r *clientRepository) Update(ctx context.Context, userID uint, client *model.Client) error {
	// Updates only the mutable columns; user_id is never written.
	res := r.db.WithContext(ctx).Model(&model.Client{}).
		Scopes(owned(userID)).
		Where("clients.id = ?", client.ID).
		Updates(map[string]interface{}{
			"name":    client.Name,
			"company": client.Company,
			"email":   client.Email,
			"phone":   client.Phone,
			"status":  client.Status,
		})
	if res.Error != nil {
		r.logger.Error("update client failed", zap.Uint("id", client.ID), zap.Error(res.Error))
		return res.Error
	}
	// MySQL reports zero affected rows when the submitted values match the
	// stored ones, so RowsAffected cannot distinguish a no-change update
	// from a missing row. Ownership is checked by the caller's preceding
	// read and by the WHERE predicate above.
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, userID, clientID uint) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).
		Scopes(owned(userID)).
		Where("clients.id = ?", clientID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListByUser(ctx context.Context, userID uint) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Scopes(owned(userID)).
		Order("clients.name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Delete(ctx context.Context, userID, clientID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Projects first so the foreign key on client_id never dangles.
		// The subquery repeats the ownership filter so an unowned client
		// id deletes nothing on either table.
		ownedIDs := tx.Model(&model.Client{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("client_id = ? AND client_id IN (?)", clientID, ownedIDs).
			Delete(&model.Project{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", clientID, userID).Delete(&model.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			r.logger.Info("client deleted", zap.Uint("id", clientID), zap.Uint("user_id", userID))
		}
		return nil
	})
}
