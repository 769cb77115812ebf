// Package seed loads the initial admin account and the sample club content.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

var ErrMissingAdminPassword = errors.New("seed.admin_password is required (set SEED_ADMIN_PASSWORD)")

type UserCreator interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

type RoadmapWriter interface {
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
}

type MemberWriter interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	CreateMember(ctx context.Context, member domain.Member) (domain.Member, error)
}

type Seeder struct {
	users   UserCreator
	roadmap RoadmapWriter
	members MemberWriter
}

func NewSeeder(users UserCreator, roadmap RoadmapWriter, members MemberWriter) *Seeder {
	return &Seeder{
		users:   users,
		roadmap: roadmap,
		members: members,
	}
}

// Admin creates the ADMIN account unless the username is already taken.
func (s *Seeder) Admin(ctx context.Context, username, password string) error {
	if password == "" {
		return ErrMissingAdminPassword
	}

	_, err := s.users.CreateUser(ctx, domain.User{
		Username: username,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, service.ErrUsernameExists) {
		zap.L().Info("admin user already exists", zap.String("username", username))
		return nil
	}
	if err != nil {
		return fmt.Errorf("s.users.CreateUser -> %w", err)
	}

	zap.L().Info("admin user created", zap.String("username", username))
	return nil
}

type sampleCategory struct {
	category domain.Category
	parent   string
	items    []domain.Item
}

var sampleRoadmap = []sampleCategory{
	{
		category: domain.Category{
			Title:       "Tanding",
			Subtitle:    "Persiapan Pertandingan",
			Description: "Roadmap persiapan untuk kategori tanding pencak silat",
			AccentColor: "#22c55e",
			Slug:        "tanding",
		},
		items: []domain.Item{
			{
				ID:            "dasar-kuda-kuda",
				Title:         "Dasar Kuda-Kuda",
				Description:   "Pelajari posisi dasar kuda-kuda yang benar",
				Label:         domain.LabelTechnique,
				Icon:          "technique",
				VideoURL:      "https://www.youtube.com/watch?v=example1",
				DetailContent: "## Dasar Kuda-Kuda Pencak Silat",
			},
			{
				ID:            "pukulan-dasar",
				Title:         "Teknik Pukulan",
				Description:   "Menguasai berbagai jenis pukulan untuk tanding",
				Label:         domain.LabelSparring,
				Icon:          "punch",
				VideoURL:      "https://www.youtube.com/watch?v=example2",
				DetailContent: "## Teknik Pukulan",
			},
		},
	},
	{
		category: domain.Category{
			Title:       "Seni",
			Subtitle:    "Persiapan Penampilan",
			Description: "Roadmap persiapan untuk kategori seni pencak silat",
			AccentColor: "#f59e0b",
			Slug:        "seni",
		},
		items: []domain.Item{
			{
				ID:            "jurus-ganda",
				Title:         "Jurus Ganda",
				Description:   "Koordinasi gerakan berpasangan",
				Label:         domain.LabelPerformance,
				Icon:          "double",
				VideoURL:      "https://www.youtube.com/watch?v=example7",
				DetailContent: "## Jurus Ganda",
			},
			{
				ID:            "jurus-regu",
				Title:         "Jurus Regu",
				Description:   "Kekompakan gerak tiga pesilat",
				Label:         domain.LabelPerformance,
				Icon:          "group",
				VideoURL:      "https://www.youtube.com/watch?v=example8",
				DetailContent: "## Jurus Regu",
			},
		},
	},
	{
		parent: "seni",
		category: domain.Category{
			Title:       "Tunggal",
			Subtitle:    "Jurus Tunggal Baku",
			Description: "Rangkaian jurus tunggal standar, tangan kosong dan bersenjata",
			AccentColor: "#f97316",
			Slug:        "tunggal",
		},
		items: []domain.Item{
			{
				ID:            "jurus-tunggal-tangan-kosong",
				Title:         "Jurus Tangan Kosong",
				Description:   "Menguasai rangkaian jurus tunggal tangan kosong",
				Label:         domain.LabelTechnique,
				Icon:          "art",
				VideoURL:      "https://www.youtube.com/watch?v=example6",
				DetailContent: "## Jurus Tunggal Tangan Kosong",
			},
			{
				ID:            "jurus-tunggal-senjata",
				Title:         "Jurus Golok dan Toya",
				Description:   "Rangkaian jurus tunggal dengan golok dan toya",
				Label:         domain.LabelTechnique,
				Icon:          "weapon",
				VideoURL:      "https://www.youtube.com/watch?v=example9",
				DetailContent: "## Jurus Tunggal Bersenjata",
			},
		},
	},
}

// Roadmap creates the sample categories (Tanding; Seni with its sub-category Tunggal) and their
// items. Categories whose slug already exists are skipped with their items.
func (s *Seeder) Roadmap(ctx context.Context) error {
	for _, sample := range sampleRoadmap {
		c := sample.category

		if _, err := s.roadmap.GetCategoryBySlug(ctx, c.Slug); err == nil {
			zap.L().Info("roadmap category already exists", zap.String("slug", c.Slug))
			continue
		} else if !errors.Is(err, service.ErrCategoryNotFound) {
			return fmt.Errorf("s.roadmap.GetCategoryBySlug -> %w", err)
		}

		if sample.parent != "" {
			parent, err := s.roadmap.GetCategoryBySlug(ctx, sample.parent)
			if err != nil {
				return fmt.Errorf("s.roadmap.GetCategoryBySlug(%s) -> %w", sample.parent, err)
			}
			c.ParentID = &parent.ID
		}

		created, err := s.roadmap.CreateCategory(ctx, c)
		if err != nil {
			return fmt.Errorf("s.roadmap.CreateCategory -> %w", err)
		}

		for _, item := range sample.items {
			item.CategoryID = created.ID
			if _, err = s.roadmap.CreateItem(ctx, item); err != nil && !errors.Is(err, service.ErrItemExists) {
				return fmt.Errorf("s.roadmap.CreateItem(%s) -> %w", item.ID, err)
			}
		}

		zap.L().Info("roadmap category seeded", zap.String("slug", created.Slug), zap.Int("items", len(sample.items)))
	}

	return nil
}

var sampleMembers = []domain.Member{
	{Name: "Budi Santoso", Role: domain.MemberRoleCoach, Cohort: "2020", Specialty: domain.SpecialtyFight},
	{Name: "Siti Aminah", Role: domain.MemberRoleRegular, Cohort: "2021", Specialty: domain.SpecialtyArtform},
}

// Members adds the sample members when the member list is empty.
func (s *Seeder) Members(ctx context.Context) error {
	existing, err := s.members.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("s.members.ListMembers -> %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, m := range sampleMembers {
		if _, err = s.members.CreateMember(ctx, m); err != nil {
			return fmt.Errorf("s.members.CreateMember -> %w", err)
		}
	}

	return nil
}
