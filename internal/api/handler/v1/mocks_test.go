package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/km-silat/km-silat-api/internal/api/middleware"
	"github.com/km-silat/km-silat-api/internal/domain"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id, callerID string) error {
	return m.Called(ctx, id, callerID).Error(0)
}

type mockMemberService struct{ mock.Mock }

func (m *mockMemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *mockMemberService) CreateMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *mockMemberService) UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *mockMemberService) DeleteMember(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMemberService) AddChampionship(ctx context.Context, c domain.Championship) (domain.Championship, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Championship), args.Error(1)
}

func (m *mockMemberService) UpdateChampionship(ctx context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Championship), args.Error(1)
}

func (m *mockMemberService) DeleteChampionship(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentService struct{ mock.Mock }

func (m *mockCommentService) ListComments(ctx context.Context, itemID string) ([]domain.Comment, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *mockCommentService) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, id string, principal *domain.Principal, authorName string) (domain.Comment, error) {
	args := m.Called(ctx, id, principal, authorName)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentService) ToggleLike(ctx context.Context, id string) (domain.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentService) CheckItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

type mockRoadmapService struct{ mock.Mock }

func (m *mockRoadmapService) ListRootCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockRoadmapService) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockRoadmapService) ListSubCategories(ctx context.Context, parentSlug string) ([]domain.Category, error) {
	args := m.Called(ctx, parentSlug)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockRoadmapService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockRoadmapService) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockRoadmapService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoadmapService) ListItemsByCategory(ctx context.Context, idOrSlug string) ([]domain.Item, error) {
	args := m.Called(ctx, idOrSlug)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockRoadmapService) ListItemsByCategorySlug(ctx context.Context, slug string) ([]domain.Item, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockRoadmapService) GetItemDetail(ctx context.Context, id string) (domain.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *mockRoadmapService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *mockRoadmapService) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *mockRoadmapService) DeleteItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []CommentEvent
}

func (p *recordingPublisher) Publish(event CommentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withPrincipal stands in for the JWT middleware.
func withPrincipal(p domain.Principal) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextPrincipalKey, p)
		ctx.Next()
	}
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
