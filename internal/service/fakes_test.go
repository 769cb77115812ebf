package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var errStorage = errors.New("storage unavailable")

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.User{}, repository.ErrUsernameExists
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	r.users[id] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeRoadmapRepo struct {
	mu         sync.Mutex
	seq        int
	categories map[string]domain.Category
	items      map[string]domain.Item
	err        error
}

func newFakeRoadmapRepo() *fakeRoadmapRepo {
	return &fakeRoadmapRepo{
		categories: map[string]domain.Category{},
		items:      map[string]domain.Item{},
	}
}

func (r *fakeRoadmapRepo) FindRootCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var roots []domain.Category
	for _, c := range r.categories {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots, r.err
}

func (r *fakeRoadmapRepo) FindChildCategories(_ context.Context, parentID string) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	children := []domain.Category{}
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	return children, nil
}

func (r *fakeRoadmapRepo) HasChildCategories(ctx context.Context, id string) (bool, error) {
	children, err := r.FindChildCategories(ctx, id)
	return len(children) > 0, err
}

func (r *fakeRoadmapRepo) FindCategoryByID(_ context.Context, id string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return domain.Category{}, r.err
	}
	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeRoadmapRepo) FindCategoryBySlug(_ context.Context, slug string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.Category{}, repository.ErrCategoryNotFound
}

func (r *fakeRoadmapRepo) SlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRoadmapRepo) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	c.ID = fmt.Sprintf("cat-%d", r.seq)
	r.categories[c.ID] = c
	return c, nil
}

func (r *fakeRoadmapRepo) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[c.ID]; !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}
	r.categories[c.ID] = c
	return c, nil
}

func (r *fakeRoadmapRepo) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(r.categories, id)
	for itemID, item := range r.items {
		if item.CategoryID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *fakeRoadmapRepo) FindItemsByCategoryID(_ context.Context, categoryID string) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []domain.Item{}
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeRoadmapRepo) FindItemByID(_ context.Context, id string) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, repository.ErrItemNotFound
	}
	return item, nil
}

func (r *fakeRoadmapRepo) FindItemWithComments(ctx context.Context, id string) (domain.Item, error) {
	return r.FindItemByID(ctx, id)
}

func (r *fakeRoadmapRepo) CreateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return domain.Item{}, repository.ErrItemExists
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeRoadmapRepo) UpdateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return domain.Item{}, repository.ErrItemNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeRoadmapRepo) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRoadmapRepo) CountItems(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.items)), r.err
}

func (r *fakeRoadmapRepo) CountCategories(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.categories)), r.err
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]domain.Comment{}}
}

func (r *fakeCommentRepo) FindTopLevelByItemID(_ context.Context, itemID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments := []domain.Comment{}
	for _, c := range r.comments {
		if c.ItemID == itemID && !c.IsReply() {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return domain.Comment{}, repository.ErrCommentNotFound
	}
	return c, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, c domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	c.ID = fmt.Sprintf("comment-%d", r.seq)
	r.comments[c.ID] = c
	return c, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.comments, id)
	for replyID, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(r.comments, replyID)
		}
	}
	return nil
}

func (r *fakeCommentRepo) ToggleLike(_ context.Context, id string) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return domain.Comment{}, repository.ErrCommentNotFound
	}
	if c.Liked {
		c.LikeCount--
	} else {
		c.LikeCount++
	}
	c.Liked = !c.Liked
	r.comments[id] = c
	return c, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	seq     int
	members map[string]domain.Member
	err     error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]domain.Member{}}
}

func (r *fakeMemberRepo) FindAll(_ context.Context) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := []domain.Member{}
	for _, m := range r.members {
		members = append(members, m)
	}
	return members, r.err
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id string) (domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) Create(_ context.Context, member domain.Member) (domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	member.ID = fmt.Sprintf("member-%d", r.seq)
	member.Championships = []domain.Championship{}
	r.members[member.ID] = member
	return member, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, id string, patch domain.MemberPatch) (domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Role != nil {
		m.Role = *patch.Role
	}
	if patch.Cohort != nil {
		m.Cohort = *patch.Cohort
	}
	if patch.Specialty != nil {
		m.Specialty = *patch.Specialty
	}
	r.members[id] = m
	return m, nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return repository.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.members)), r.err
}

func (r *fakeMemberRepo) CreateChampionship(_ context.Context, c domain.Championship) (domain.Championship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[c.MemberID]
	if !ok {
		return domain.Championship{}, repository.ErrMemberNotFound
	}
	r.seq++
	c.ID = fmt.Sprintf("championship-%d", r.seq)
	m.Championships = append(m.Championships, c)
	r.members[m.ID] = m
	return c, nil
}

func (r *fakeMemberRepo) UpdateChampionship(_ context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for memberID, m := range r.members {
		for i, c := range m.Championships {
			if c.ID != id {
				continue
			}
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Year != nil {
				c.Year = *patch.Year
			}
			if patch.Achievement != nil {
				c.Achievement = *patch.Achievement
			}
			m.Championships[i] = c
			r.members[memberID] = m
			return c, nil
		}
	}
	return domain.Championship{}, repository.ErrChampionshipNotFound
}

func (r *fakeMemberRepo) DeleteChampionship(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for memberID, m := range r.members {
		for i, c := range m.Championships {
			if c.ID == id {
				m.Championships = append(m.Championships[:i], m.Championships[i+1:]...)
				r.members[memberID] = m
				return nil
			}
		}
	}
	return repository.ErrChampionshipNotFound
}

type fakeScheduleRepo struct {
	entries [domain.ScheduleDays]domain.ScheduleEntry
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	r := &fakeScheduleRepo{}
	for i := range r.entries {
		r.entries[i] = domain.ScheduleEntry{ID: i, DayName: domain.DayNames[i], Status: domain.ScheduleStatusRest}
	}
	return r
}

func (r *fakeScheduleRepo) FindAll(_ context.Context) ([]domain.ScheduleEntry, error) {
	return r.entries[:], nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error) {
	e := r.entries[id]
	if update.Status != nil {
		e.Status = *update.Status
	}
	if update.Category != nil {
		e.Category = update.Category
	}
	if update.Time != nil {
		e.Time = update.Time
	}
	if update.Location != nil {
		e.Location = update.Location
	}
	r.entries[id] = e
	return e, nil
}

func ptr[T any](v T) *T {
	return &v
}
