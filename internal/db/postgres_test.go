package db

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
	"github.com/km-silat/km-silat-api/internal/seed"
	"github.com/km-silat/km-silat-api/internal/service"
)

var testDB *gorm.DB

// TestMain starts a throwaway Postgres container. Without Docker (or with -short) the
// integration tests are skipped.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, skipping database tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=silat",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=km_silat",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://silat:secret@%s/km_silat?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 90 * time.Second
	if err = pool.Retry(func() error {
		var openErr error
		testDB, openErr = OpenPostgresWithURL(dsn)
		return openErr
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not connect to postgres: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %v", err)
	}
	os.Exit(code)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testDB == nil {
		t.Skip("database tests need docker")
	}

	require.NoError(t, testDB.Exec(
		"TRUNCATE users, members, championships, roadmap_categories, roadmap_items, comments CASCADE",
	).Error)

	return testDB
}

type services struct {
	users    *service.UserService
	members  *service.MemberService
	schedule *service.ScheduleService
	roadmap  *service.RoadmapService
	comments *service.CommentService
	stats    *service.StatsService
}

func newServices(db *gorm.DB) services {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	roadmapRepo := repository.NewRoadmapRepository(dao.NewRoadmapDAO(db))
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))

	return services{
		users:    service.NewUserService(userRepo),
		members:  service.NewMemberService(memberRepo),
		schedule: service.NewScheduleService(repository.NewScheduleRepository(dao.NewScheduleDAO(db))),
		roadmap:  service.NewRoadmapService(roadmapRepo),
		comments: service.NewCommentService(commentRepo, roadmapRepo, "https://avatars.example.com/svg"),
		stats:    service.NewStatsService(memberRepo, roadmapRepo),
	}
}

func TestSchedule(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	entries, err := svc.schedule.ListSchedule(ctx)
	require.NoError(t, err)
	require.Len(t, entries, domain.ScheduleDays)
	for i, e := range entries {
		assert.Equal(t, i, e.ID)
		assert.Equal(t, domain.DayNames[i], e.DayName)
	}

	status := domain.ScheduleStatusTraining
	location := "Aula"
	updated, err := svc.schedule.UpdateSchedule(ctx, 0, domain.ScheduleUpdate{Status: &status, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	require.NotNil(t, updated.Location)
	assert.Equal(t, location, *updated.Location)

	require.NoError(t, dao.SeedSchedule(ctx, db))
	entries, err = svc.schedule.ListSchedule(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, domain.ScheduleDays)
	assert.Equal(t, status, entries[0].Status)
}

func TestUsers(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	admin, err := svc.users.CreateUser(ctx, domain.User{Username: "admin", Password: "Secret123", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = repository.NewUserRepository(dao.NewUserDAO(db)).Create(ctx, domain.User{Username: "admin", Password: "x", Role: domain.RoleUser})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)

	user, err := service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(db))).Login(ctx, "admin", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	assert.ErrorIs(t, svc.users.DeleteUser(ctx, admin.ID, admin.ID), service.ErrSelfDelete)
	assert.ErrorIs(t, svc.users.DeleteUser(ctx, "00000000-0000-0000-0000-000000000000", admin.ID), service.ErrUserNotFound)
}

func TestMembers(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	member, err := svc.members.CreateMember(ctx, domain.Member{Name: "Budi Santoso", Role: domain.MemberRoleCoach, Cohort: "2020"})
	require.NoError(t, err)
	assert.Equal(t, domain.SpecialtyUnset, member.Specialty)

	championship, err := svc.members.AddChampionship(ctx, domain.Championship{Name: "Porprov", Year: 2023, Achievement: "Emas", MemberID: member.ID})
	require.NoError(t, err)

	_, err = svc.members.AddChampionship(ctx, domain.Championship{Name: "Porprov", Year: 2023, Achievement: "Emas", MemberID: "00000000-0000-0000-0000-000000000000"})
	assert.ErrorIs(t, err, service.ErrMemberNotFound)

	members, err := svc.members.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Len(t, members[0].Championships, 1)
	assert.Equal(t, championship.ID, members[0].Championships[0].ID)

	require.NoError(t, svc.members.DeleteMember(ctx, member.ID))

	_, err = svc.members.UpdateChampionship(ctx, championship.ID, domain.ChampionshipPatch{Name: &championship.Name})
	assert.ErrorIs(t, err, service.ErrChampionshipNotFound)
}

func TestRoadmap(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	require.NoError(t, seed.NewSeeder(svc.users, svc.roadmap, svc.members).Roadmap(ctx))

	roots, err := svc.roadmap.ListRootCategories(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "tanding", roots[0].Slug)
	assert.Len(t, roots[0].Items, 2)
	assert.Empty(t, roots[0].SubCategories)

	seni := roots[1]
	assert.Equal(t, "seni", seni.Slug)
	assert.Len(t, seni.Items, 2)
	require.Len(t, seni.SubCategories, 1)
	tunggal := seni.SubCategories[0]
	assert.Equal(t, "tunggal", tunggal.Slug)
	assert.Len(t, tunggal.Items, 2)

	t.Run("items by id or slug", func(t *testing.T) {
		byID, err := svc.roadmap.ListItemsByCategory(ctx, tunggal.ID)
		require.NoError(t, err)
		bySlug, err := svc.roadmap.ListItemsByCategory(ctx, "tunggal")
		require.NoError(t, err)
		assert.Equal(t, byID, bySlug)

		unknown, err := svc.roadmap.ListItemsByCategory(ctx, "unknown")
		require.NoError(t, err)
		assert.Empty(t, unknown)
	})

	t.Run("slug conflict", func(t *testing.T) {
		_, err := svc.roadmap.CreateCategory(ctx, domain.Category{Title: "Seni", Subtitle: "x", Description: "x", AccentColor: "#000"})
		assert.ErrorIs(t, err, service.ErrCategorySlugExists)

		_, err = repository.NewRoadmapRepository(dao.NewRoadmapDAO(db)).CreateCategory(ctx, domain.Category{Title: "Seni", Slug: "seni"})
		assert.ErrorIs(t, err, repository.ErrCategorySlugExists)
	})

	t.Run("depth limit", func(t *testing.T) {
		_, err := svc.roadmap.CreateCategory(ctx, domain.Category{Title: "Toya", Subtitle: "x", Description: "x", AccentColor: "#000", ParentID: &tunggal.ID})
		assert.ErrorIs(t, err, service.ErrCategoryDepth)
	})

	t.Run("duplicate item", func(t *testing.T) {
		_, err := svc.roadmap.CreateItem(ctx, domain.Item{ID: "pukulan-dasar", Title: "x", Description: "x", Label: domain.LabelTechnique, CategoryID: tunggal.ID})
		assert.ErrorIs(t, err, service.ErrItemExists)
	})

	t.Run("update clears parent", func(t *testing.T) {
		tunggal.ParentID = nil
		moved, err := svc.roadmap.UpdateCategory(ctx, tunggal)
		require.NoError(t, err)
		assert.Nil(t, moved.ParentID)

		tunggal.ParentID = &seni.ID
		_, err = svc.roadmap.UpdateCategory(ctx, tunggal)
		require.NoError(t, err)
	})

	stats, err := svc.stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalMaterials)

	t.Run("cascade delete", func(t *testing.T) {
		item := tunggal.Items[0]
		_, err := svc.comments.CreateComment(ctx, domain.Comment{Body: "Mantap", ItemID: item.ID})
		require.NoError(t, err)

		require.NoError(t, svc.roadmap.DeleteCategory(ctx, seni.ID))

		_, err = svc.roadmap.GetCategoryBySlug(ctx, "tunggal")
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
		_, err = svc.roadmap.GetItemDetail(ctx, item.ID)
		assert.ErrorIs(t, err, service.ErrItemNotFound)

		var comments int64
		require.NoError(t, db.Model(&dao.Comment{}).Where("item_id = ?", item.ID).Count(&comments).Error)
		assert.Zero(t, comments)

		count, err := svc.roadmap.CountCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestComments(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	category, err := svc.roadmap.CreateCategory(ctx, domain.Category{Title: "Tanding", Subtitle: "x", Description: "x", AccentColor: "#000"})
	require.NoError(t, err)
	item, err := svc.roadmap.CreateItem(ctx, domain.Item{ID: "pukulan-dasar", Title: "Pukulan", Description: "x", Label: domain.LabelTechnique, CategoryID: category.ID})
	require.NoError(t, err)

	root, err := svc.comments.CreateComment(ctx, domain.Comment{Body: "Pertanyaan", AuthorName: "Rina", ItemID: item.ID})
	require.NoError(t, err)
	reply, err := svc.comments.CreateComment(ctx, domain.Comment{Body: "Jawaban", ItemID: item.ID, ParentID: &root.ID})
	require.NoError(t, err)
	nested, err := svc.comments.CreateComment(ctx, domain.Comment{Body: "Terima kasih", ItemID: item.ID, ParentID: &reply.ID})
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, root.ID, *nested.ParentID)

	top, err := svc.comments.ListComments(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Len(t, top[0].Replies, 2)

	detail, err := svc.roadmap.GetItemDetail(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Len(t, detail.Comments[0].Replies, 2)

	liked, err := svc.comments.ToggleLike(ctx, root.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, err := svc.comments.ToggleLike(ctx, root.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikeCount)

	_, err = svc.comments.DeleteComment(ctx, root.ID, nil, "Budi")
	assert.ErrorIs(t, err, service.ErrCommentForbidden)

	_, err = svc.comments.DeleteComment(ctx, root.ID, nil, "Rina")
	require.NoError(t, err)

	top, err = svc.comments.ListComments(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, top)

	_, err = svc.comments.ToggleLike(ctx, reply.ID)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}
