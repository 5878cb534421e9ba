package folder

import (
	"context"
	"time"

	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/pkg/id"
)

type store interface {
	Put(ctx context.Context, f *domain.Folder) error
	ListByUser(ctx context.Context, userID string) ([]domain.Folder, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// petStyle is the icon and accent color a folder gets for a known pet name.
type petStyle struct {
	Icon  string
	Color string
}

// petCatalog maps the pet names offered by the app onboarding to their folder
// styling. Unknown names fall back to defaultStyle.
var petCatalog = map[string]petStyle{
	"Mèo":     {Icon: "🐱", Color: "#EC4899"},
	"Cá":      {Icon: "🐠", Color: "#60A5FA"},
	"Rắn":     {Icon: "🐍", Color: "#FB7185"},
	"Rùa":     {Icon: "🐢", Color: "#34D399"},
	"Heo":     {Icon: "🐷", Color: "#F59E42"},
	"Thỏ":     {Icon: "🐰", Color: "#10B981"},
	"Chó":     {Icon: "🐕", Color: "#8B5CF6"},
	"Vẹt":     {Icon: "🦜", Color: "#EC4899"},
	"Hamster": {Icon: "🐹", Color: "#B45309"},
}

var defaultStyle = petStyle{Icon: "🐾", Color: "#8E97FD"}

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Folder, error)
	// Sync replaces the user's folder set with one folder per selected pet,
	// in the order given. Duplicate pet names collapse to a single folder.
	Sync(ctx context.Context, userID string, req *domain.SyncFoldersRequest) ([]domain.Folder, error)
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

func (s *service) List(ctx context.Context, userID string) ([]domain.Folder, error) {
	folders, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	return folders, nil
}

func (s *service) Sync(ctx context.Context, userID string, req *domain.SyncFoldersRequest) ([]domain.Folder, error) {
	if err := s.store.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seen := make(map[string]bool, len(req.SelectedPets))
	folders := make([]domain.Folder, 0, len(req.SelectedPets))
	for _, pet := range req.SelectedPets {
		if pet == "" || seen[pet] {
			continue
		}
		seen[pet] = true

		style, ok := petCatalog[pet]
		if !ok {
			style = defaultStyle
		}
		f := domain.Folder{
			FolderID:  id.New(),
			UserID:    userID,
			Name:      pet,
			Icon:      style.Icon,
			Color:     style.Color,
			CreatedAt: now,
		}
		if err := s.store.Put(ctx, &f); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, nil
}
