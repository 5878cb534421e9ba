package diary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/pkg/id"
)

type store interface {
	Put(ctx context.Context, e *domain.DiaryEntry) error
	Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DiaryEntry, error)
	ListTrashedByUser(ctx context.Context, userID string) ([]domain.DiaryEntry, error)
	Update(ctx context.Context, entryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, entryID string) error
}

type Service interface {
	// List returns the user's live entries, newest first.
	List(ctx context.Context, userID string) ([]domain.DiaryEntry, error)
	Create(ctx context.Context, userID string, req *domain.CreateEntryRequest) (*domain.DiaryEntry, error)
	Update(ctx context.Context, userID, entryID string, req *domain.UpdateEntryRequest) (*domain.DiaryEntry, error)
	// SoftDelete moves an entry to the trash, where it stays recoverable for
	// the retention window.
	SoftDelete(ctx context.Context, userID, entryID string) error
	// Trash lists the user's recoverable entries with days-left counters.
	// Entries past the retention window are purged on the way out.
	Trash(ctx context.Context, userID string) ([]domain.TrashedEntry, error)
	Restore(ctx context.Context, userID, entryID string) (*domain.DiaryEntry, error)
	// PermanentDelete removes a trashed entry for good. Live entries must be
	// trashed first.
	PermanentDelete(ctx context.Context, userID, entryID string) error
}

type service struct {
	store store
}

type ServiceDeps struct {
	Store store
}

func NewService(deps ServiceDeps) Service {
	return &service{store: deps.Store}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.DiaryEntry, error) {
	entries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.DiaryEntry{}
	}
	return entries, nil
}

func (s *service) Create(ctx context.Context, userID string, req *domain.CreateEntryRequest) (*domain.DiaryEntry, error) {
	if _, err := time.Parse("2006-01-02", req.EntryDate); err != nil {
		return nil, fmt.Errorf("entry_date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	e := &domain.DiaryEntry{
		EntryID:     id.New(),
		UserID:      userID,
		FolderID:    req.FolderID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		EntryDate:   req.EntryDate,
		EntryTime:   req.EntryTime,
		BgColor:     req.BgColor,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		e.HasPassword = true
		e.PasswordHash = string(hash)
	}
	if err := s.store.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, userID, entryID string, req *domain.UpdateEntryRequest) (*domain.DiaryEntry, error) {
	if _, err := s.getOwnedLive(ctx, userID, entryID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FolderID != nil {
		updates["folder_id"] = *req.FolderID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.BgColor != nil {
		updates["bg_color"] = *req.BgColor
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.store.Update(ctx, entryID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, entryID)
}

func (s *service) SoftDelete(ctx context.Context, userID, entryID string) error {
	if _, err := s.getOwnedLive(ctx, userID, entryID); err != nil {
		return err
	}
	return s.store.Update(ctx, entryID, map[string]interface{}{
		"deleted":    true,
		"deleted_at": time.Now().UTC(),
	})
}

func (s *service) Trash(ctx context.Context, userID string) ([]domain.TrashedEntry, error) {
	entries, err := s.store.ListTrashedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trashed := make([]domain.TrashedEntry, 0, len(entries))
	for _, e := range entries {
		if e.DeletedAt == nil {
			continue
		}
		expiresAt := e.DeletedAt.Add(domain.TrashRetention)
		if !now.Before(expiresAt) {
			if err := s.store.HardDelete(ctx, e.EntryID); err != nil {
				slog.Warn("failed to purge expired trash entry", "entry_id", e.EntryID, "err", err)
			}
			continue
		}
		trashed = append(trashed, domain.TrashedEntry{
			DiaryEntry: e,
			DaysLeft:   daysLeft(expiresAt, now),
		})
	}
	return trashed, nil
}

func (s *service) Restore(ctx context.Context, userID, entryID string) (*domain.DiaryEntry, error) {
	e, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if !e.Deleted {
		return nil, fmt.Errorf("entry is not in the trash: %w", domain.ErrBadRequest)
	}
	err = s.store.Update(ctx, entryID, map[string]interface{}{
		"deleted":    false,
		"deleted_at": nil,
	})
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, entryID)
}

func (s *service) PermanentDelete(ctx context.Context, userID, entryID string) error {
	e, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if !e.Deleted {
		return fmt.Errorf("entry must be trashed first: %w", domain.ErrBadRequest)
	}
	return s.store.HardDelete(ctx, entryID)
}

// getOwned loads the entry and enforces ownership. A foreign entry reads as
// not found so entry ids are not probeable across accounts.
func (s *service) getOwned(ctx context.Context, userID, entryID string) (*domain.DiaryEntry, error) {
	e, err := s.store.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, fmt.Errorf("diary entry not found: %w", domain.ErrNotFound)
	}
	return e, nil
}

func (s *service) getOwnedLive(ctx context.Context, userID, entryID string) (*domain.DiaryEntry, error) {
	e, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Deleted {
		return nil, fmt.Errorf("diary entry is in the trash: %w", domain.ErrNotFound)
	}
	return e, nil
}

func daysLeft(expiresAt, now time.Time) int {
	d := expiresAt.Sub(now)
	days := int(d.Hours() / 24)
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
