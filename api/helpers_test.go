package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rohityadav-alpha/rohit-portfolio/auth"
	"github.com/rohityadav-alpha/rohit-portfolio/database"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminPassword = "test-admin-password"

// fakeClock hands out strictly increasing timestamps so ordering assertions
// are deterministic
type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeBlogPostStore struct {
	mutex sync.Mutex
	clock *fakeClock
	posts []*models.BlogPost
}

func newFakeBlogPostStore(clock *fakeClock) *fakeBlogPostStore {
	return &fakeBlogPostStore{clock: clock}
}

func (s *fakeBlogPostStore) FindAll() ([]*models.BlogPost, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	all := make([]*models.BlogPost, len(s.posts))
	copy(all, s.posts)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (s *fakeBlogPostStore) FindBySlug(slug string) (*models.BlogPost, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, post := range s.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogPostStore) Add(blogPost *models.BlogPost) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, post := range s.posts {
		if post.Slug == blogPost.Slug {
			return errs.NewAlreadyExists("blog post slug")
		}
	}
	blogPost.ID = uuid.New()
	blogPost.CreatedAt = s.clock.next()
	blogPost.UpdatedAt = blogPost.CreatedAt
	clone := *blogPost
	s.posts = append(s.posts, &clone)
	return nil
}

func (s *fakeBlogPostStore) Update(blogPost *models.BlogPost) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, post := range s.posts {
		if post.ID == blogPost.ID {
			blogPost.UpdatedAt = s.clock.next()
			clone := *blogPost
			s.posts[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeBlogPostStore) DeleteBySlug(slug string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, post := range s.posts {
		if post.Slug == slug {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeProjectStore struct {
	mutex    sync.Mutex
	clock    *fakeClock
	projects []*models.Project
}

func newFakeProjectStore(clock *fakeClock) *fakeProjectStore {
	return &fakeProjectStore{clock: clock}
}

func (s *fakeProjectStore) FindAll() ([]*models.Project, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	all := make([]*models.Project, len(s.projects))
	copy(all, s.projects)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (s *fakeProjectStore) FindBySlug(slug string) (*models.Project, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, project := range s.projects {
		if project.Slug == slug {
			clone := *project
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.projects {
		if existing.Slug == project.Slug {
			return errs.NewAlreadyExists("project slug")
		}
	}
	project.ID = uuid.New()
	project.CreatedAt = s.clock.next()
	clone := *project
	s.projects = append(s.projects, &clone)
	return nil
}

func (s *fakeProjectStore) Update(project *models.Project) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, existing := range s.projects {
		if existing.ID == project.ID {
			clone := *project
			s.projects[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeProjectStore) DeleteBySlug(slug string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, project := range s.projects {
		if project.Slug == slug {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCommentStore struct {
	mutex    sync.Mutex
	clock    *fakeClock
	comments []*models.Comment
}

func newFakeCommentStore(clock *fakeClock) *fakeCommentStore {
	return &fakeCommentStore{clock: clock}
}

func (s *fakeCommentStore) FindApprovedForPost(postID uuid.UUID, postType models.PostType) ([]*models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var topLevel []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID && c.PostType == postType && c.Approved && c.ParentID == nil {
			clone := *c
			clone.Replies = nil
			topLevel = append(topLevel, &clone)
		}
	}
	sort.Slice(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt.After(topLevel[j].CreatedAt)
	})

	for _, parent := range topLevel {
		for _, c := range s.comments {
			if c.ParentID != nil && *c.ParentID == parent.ID && c.Approved {
				parent.Replies = append(parent.Replies, *c)
			}
		}
		sort.Slice(parent.Replies, func(i, j int) bool {
			return parent.Replies[i].CreatedAt.Before(parent.Replies[j].CreatedAt)
		})
	}

	return topLevel, nil
}

func (s *fakeCommentStore) FindForModeration(filter database.ModerationFilter, postType models.PostType, query string) ([]*models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var matched []*models.Comment
	for _, c := range s.comments {
		if filter == database.ModerationFilterPending && c.Approved {
			continue
		}
		if filter == database.ModerationFilterApproved && !c.Approved {
			continue
		}
		if postType != "" && c.PostType != postType {
			continue
		}
		if query != "" && !containsFold(c.UserName, query) && !containsFold(c.UserEmail, query) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *fakeCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, c := range s.comments {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = s.clock.next()
	clone := *comment
	s.comments = append(s.comments, &clone)
	return nil
}

func (s *fakeCommentStore) Approve(id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, c := range s.comments {
		if c.ID == id {
			c.Approved = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeCommentStore) Delete(id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found := false
	var kept []*models.Comment
	for _, c := range s.comments {
		if c.ID == id {
			found = true
			continue
		}
		if c.ParentID != nil && *c.ParentID == id {
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	s.comments = kept
	return nil
}

func containsFold(haystack, needle string) bool {
	return bytes.Contains(bytes.ToLower([]byte(haystack)), bytes.ToLower([]byte(needle)))
}

type likeKey struct {
	postID   uuid.UUID
	postType models.PostType
	userID   string
}

type fakeLikeStore struct {
	mutex sync.Mutex
	likes map[likeKey]struct{}
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]struct{})}
}

func (s *fakeLikeStore) Toggle(like *models.Like) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	key := likeKey{like.PostID, like.PostType, like.UserID}
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	s.likes[key] = struct{}{}
	return true, nil
}

func (s *fakeLikeStore) CountForPost(postID uuid.UUID, postType models.PostType) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var count int64
	for key := range s.likes {
		if key.postID == postID && key.postType == postType {
			count++
		}
	}
	return count, nil
}

func (s *fakeLikeStore) UserLiked(postID uuid.UUID, postType models.PostType, userID string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.likes[likeKey{postID, postType, userID}]
	return ok, nil
}

type fakeContactMessageStore struct {
	mutex    sync.Mutex
	clock    *fakeClock
	messages []*models.ContactMessage
}

func newFakeContactMessageStore(clock *fakeClock) *fakeContactMessageStore {
	return &fakeContactMessageStore{clock: clock}
}

func (s *fakeContactMessageStore) FindAll() ([]*models.ContactMessage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	all := make([]*models.ContactMessage, len(s.messages))
	copy(all, s.messages)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (s *fakeContactMessageStore) Add(message *models.ContactMessage) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	message.ID = uuid.New()
	message.CreatedAt = s.clock.next()
	clone := *message
	s.messages = append(s.messages, &clone)
	return nil
}

type recordingNotifier struct {
	mutex    sync.Mutex
	notified []models.ContactMessage
	err      error
}

func (n *recordingNotifier) NotifyNewMessage(message models.ContactMessage) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.notified = append(n.notified, message)
	return n.err
}

// fakePostRefStore knows which posts exist per content kind
type fakePostRefStore struct {
	mutex sync.Mutex
	posts map[models.PostType]map[uuid.UUID]struct{}
}

func newFakePostRefStore() *fakePostRefStore {
	return &fakePostRefStore{posts: map[models.PostType]map[uuid.UUID]struct{}{
		models.PostTypeBlog:    {},
		models.PostTypeProject: {},
	}}
}

func (s *fakePostRefStore) register(postType models.PostType, postID uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.posts[postType][postID] = struct{}{}
}

func (s *fakePostRefStore) Exists(postID uuid.UUID, postType models.PostType) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	byID, ok := s.posts[postType]
	if !ok {
		return false, nil
	}
	_, ok = byID[postID]
	return ok, nil
}

// testServer bundles the router with the fakes behind it so tests can both
// drive HTTP and inspect state
type testServer struct {
	router    chi.Router
	sessions  *auth.Service
	blogPosts *fakeBlogPostStore
	projects  *fakeProjectStore
	comments  *fakeCommentStore
	likes     *fakeLikeStore
	contacts  *fakeContactMessageStore
	notifier  *recordingNotifier
	refs      *fakePostRefStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	passwordHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)
	sessions := auth.NewService(passwordHash, "test-session-secret", time.Hour)

	clock := newFakeClock()
	server := &testServer{
		sessions:  sessions,
		blogPosts: newFakeBlogPostStore(clock),
		projects:  newFakeProjectStore(clock),
		comments:  newFakeCommentStore(clock),
		likes:     newFakeLikeStore(),
		contacts:  newFakeContactMessageStore(clock),
		notifier:  &recordingNotifier{},
		refs:      newFakePostRefStore(),
	}

	handlers := &routeHandlers{
		blogPostHandler: newBlogPostHandler(server.blogPosts, "Test Author"),
		projectHandler:  newProjectHandler(server.projects),
		commentHandler:  newCommentHandler(server.comments, server.refs),
		likeHandler:     newLikeHandler(server.likes, server.refs),
		contactHandler:  newContactHandler(server.contacts, server.notifier),
		adminHandler:    newAdminHandler(sessions, false),
	}

	router := chi.NewRouter()
	router.Use(visitorIdentity)
	setupRoutes(router, handlers, sessions)
	server.router = router

	return server
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.sessions.Login(testAdminPassword)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. A non-empty token
// goes into the Authorization header.
func (s *testServer) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// newCookieRequest builds a request authenticated via the session cookie
// instead of the Authorization header
func newCookieRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	return req
}

func serveRequest(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
