package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"clienttrack/internal/cache"
	"clienttrack/internal/errors"
	"clienttrack/internal/model"
	"clienttrack/internal/repository"
)

// ClientInput carries the mutable client fields from a form submission.
type ClientInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Status  string
}

// ClientService handles client CRUD for the acting user.
type ClientService interface {
	List(ctx context.Context, userID uint) ([]model.Client, error)
	Get(ctx context.Context, userID, clientID uint) (*model.Client, error)
	Create(ctx context.Context, userID uint, in ClientInput) (*model.Client, error)
	Update(ctx context.Context, userID, clientID uint, in ClientInput) (*model.Client, error)
	Delete(ctx context.Context, userID, clientID uint) error
}

type clientService struct {
	clientRepo repository.ClientRepository
	cache      *cache.Client
}

// NewClientService creates a new client service.
func NewClientService(clientRepo repository.ClientRepository, cache *cache.Client) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		cache:      cache,
	}
}

func (s *clientService) List(ctx context.Context, userID uint) ([]model.Client, error) {
	return s.clientRepo.ListByUser(ctx, userID)
}

func (s *clientService) Get(ctx context.Context, userID, clientID uint) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, userID, clientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

// Create persists a new client owned by userID. The owner id always comes
// from the acting session, never from the form.
func (s *clientService) Create(ctx context.Context, userID uint, in ClientInput) (*model.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.ErrNameRequired
	}

	client := &model.Client{
		UserID:  userID,
		Name:    in.Name,
		Company: in.Company,
		Email:   in.Email,
		Phone:   in.Phone,
		Status:  model.ClientStatus(in.Status),
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, userID, clientID uint, in ClientInput) (*model.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.ErrNameRequired
	}

	client, err := s.Get(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Company = in.Company
	client.Email = in.Email
	client.Phone = in.Phone
	client.Status = model.ClientStatus(in.Status)

	if err := s.clientRepo.Update(ctx, userID, client); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

// Delete removes the client and its projects. Deleting a client that does
// not belong to the user is a no-op.
func (s *clientService) Delete(ctx context.Context, userID, clientID uint) error {
	if err := s.clientRepo.Delete(ctx, userID, clientID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	// Projects may have gone with the client.
	_ = s.cache.Delete(ctx, revenueCacheKey(userID))
	return nil
}
