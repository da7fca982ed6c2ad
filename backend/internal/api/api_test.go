package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/graph"
	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// fakeStore keeps nodes and edges in memory
type fakeStore struct {
	mu      sync.Mutex
	users   map[int64]model.Record
	events  map[int64]model.Record
	friends map[[2]int64]bool
	attends map[[2]int64]bool
	failAll error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[int64]model.Record{},
		events:  map[int64]model.Record{},
		friends: map[[2]int64]bool{},
		attends: map[[2]int64]bool{},
	}
}

func (s *fakeStore) TestConnection(ctx context.Context) (string, error) {
	if s.failAll != nil {
		return "", s.failAll
	}
	return "Connected to Neo4j!", nil
}

func (s *fakeStore) AddUser(ctx context.Context, user *model.User) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	if _, ok := s.users[user.UserID]; ok {
		return nil, apperrors.NewDuplicateKey(constants.LabelUser, user.UserID, nil)
	}
	s.users[user.UserID] = user.NodeProperties()
	return s.users[user.UserID], nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id int64) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	return s.users[id], nil
}

func (s *fakeStore) GetAllUsers(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	return values(s.users), nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, id int64, fields model.Record) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return update(s.users, id, fields)
}

func (s *fakeStore) RemoveUser(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	for k := range s.friends {
		if k[0] == id || k[1] == id {
			delete(s.friends, k)
		}
	}
	return true, nil
}

func (s *fakeStore) AddEvent(ctx context.Context, event *model.Event) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; ok {
		return nil, apperrors.NewDuplicateKey(constants.LabelEvent, event.ID, nil)
	}
	s.events[event.ID] = event.Serialize()
	return s.events[event.ID], nil
}

func (s *fakeStore) GetEventByID(ctx context.Context, id int64) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id], nil
}

func (s *fakeStore) GetAllEvents(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return values(s.events), nil
}

func (s *fakeStore) UpdateEvent(ctx context.Context, id int64, fields model.Record) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return update(s.events, id, fields)
}

func (s *fakeStore) RemoveEvent(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *fakeStore) CreateFriendship(ctx context.Context, from, to int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from == to {
		return false, apperrors.NewInvalidField("friendID", "a user cannot befriend themselves")
	}
	if s.users[from] == nil || s.users[to] == nil {
		return false, nil
	}
	s.friends[[2]int64{from, to}] = true
	return true, nil
}

func (s *fakeStore) GetFriends(ctx context.Context, id int64) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Record
	for _, fid := range s.friendIDs(id) {
		out = append(out, s.users[fid])
	}
	return out, nil
}

func (s *fakeStore) friendIDs(id int64) []int64 {
	seen := map[int64]bool{}
	for k := range s.friends {
		if k[0] == id {
			seen[k[1]] = true
		}
		if k[1] == id {
			seen[k[0]] = true
		}
	}
	ids := make([]int64, 0, len(seen))
	for fid := range seen {
		ids = append(ids, fid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *fakeStore) GetFriendsOfFriends(ctx context.Context, id int64) ([]graph.FriendOfFriend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	direct := map[int64]bool{id: true}
	for _, fid := range s.friendIDs(id) {
		direct[fid] = true
	}
	found := map[int64]bool{}
	var out []graph.FriendOfFriend
	for _, fid := range s.friendIDs(id) {
		for _, fof := range s.friendIDs(fid) {
			if direct[fof] || found[fof] {
				continue
			}
			found[fof] = true
			out = append(out, graph.FriendOfFriend{UserID: fof, Distance: 2, User: s.users[fof]})
		}
	}
	return out, nil
}

func (s *fakeStore) AttendEvent(ctx context.Context, userID, eventID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[userID] == nil || s.events[eventID] == nil {
		return false, nil
	}
	s.attends[[2]int64{userID, eventID}] = true
	return true, nil
}

func (s *fakeStore) GetAttendedEvents(ctx context.Context, userID int64) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Record
	for k := range s.attends {
		if k[0] == userID {
			out = append(out, s.events[k[1]])
		}
	}
	return out, nil
}

func (s *fakeStore) BulkLoad(ctx context.Context, users []*model.User, events []*model.Event, rels []graph.Relationship) (*graph.BulkLoadResult, error) {
	for _, u := range users {
		if _, err := s.AddUser(ctx, u); err != nil {
			return nil, err
		}
	}
	for _, e := range events {
		if _, err := s.AddEvent(ctx, e); err != nil {
			return nil, err
		}
	}
	for _, r := range rels {
		if r.Type == constants.RelAttended {
			s.AttendEvent(ctx, r.From, r.To)
		} else {
			s.CreateFriendship(ctx, r.From, r.To)
		}
	}
	return &graph.BulkLoadResult{Users: len(users), Events: len(events), Relationships: len(rels)}, nil
}

func values(m map[int64]model.Record) []model.Record {
	var out []model.Record
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func update(m map[int64]model.Record, id int64, fields model.Record) (model.Record, error) {
	rec, ok := m[id]
	if !ok {
		return nil, nil
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

// recordingPublisher hands every published user to a channel
type recordingPublisher struct {
	published chan *model.User
}

func (p *recordingPublisher) PublishUserCreated(ctx context.Context, user *model.User) error {
	p.published <- user
	return nil
}

func setupRouter(store *fakeStore, pub UserEventPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(store, pub, model.NewAdminHolder(), nil))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

const johnJSON = `{
	"userID": 1,
	"name": "John Doe",
	"dateOfBirth": "1990-01-01",
	"gender": "male",
	"location": {"city": "New York", "country": "USA"},
	"phoneNumber": "+1234567890",
	"email": "john@example.com"
}`

func TestHealthEndpoint(t *testing.T) {
	store := newFakeStore()
	router := setupRouter(store, nil)

	for _, path := range []string{"/", "/health"} {
		w := doRequest(router, "GET", path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		decodeBody(t, w, &response)
		assert.Equal(t, "ok", response["status"])
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	}

	store.failAll = errors.New("connection refused")
	w := doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateUser_PublishesAndReturnsRecord(t *testing.T) {
	pub := &recordingPublisher{published: make(chan *model.User, 1)}
	router := setupRouter(newFakeStore(), pub)

	w := doRequest(router, "POST", "/users", johnJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	decodeBody(t, w, &created)
	assert.Equal(t, "John Doe", created["name"])

	select {
	case user := <-pub.published:
		assert.Equal(t, int64(1), user.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("user was not published")
	}

	w = doRequest(router, "POST", "/users", johnJSON)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_InvalidBody(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	w := doRequest(router, "POST", "/users", `{"name": "No ID"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/users", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserLifecycle(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	require.Equal(t, http.StatusCreated, doRequest(router, "POST", "/users", johnJSON).Code)

	w := doRequest(router, "GET", "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "PUT", "/users/1", `{"name": "John Updated"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	decodeBody(t, w, &updated)
	assert.Equal(t, "John Updated", updated["name"])
	assert.Equal(t, "john@example.com", updated["email"])

	w = doRequest(router, "GET", "/users", "")
	var all []map[string]interface{}
	decodeBody(t, w, &all)
	assert.Len(t, all, 1)

	assert.Equal(t, http.StatusOK, doRequest(router, "DELETE", "/users/1", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "DELETE", "/users/1", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "GET", "/users/1", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "PUT", "/users/1", `{"name": "x"}`).Code)
}

func TestMalformedIDs(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	assert.Equal(t, http.StatusBadRequest, doRequest(router, "GET", "/users/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, "DELETE", "/events/1.5", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, "POST", "/users/1/friends/x", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, "GET", "/recommendations?userID=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, "PUT", "/users/1", "").Code)
}

func TestListsAreNeverNull(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	for _, path := range []string{"/users", "/events", "/users/9/friends", "/users/9/friends-of-friends", "/users/9/events"} {
		w := doRequest(router, "GET", path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "[]", w.Body.String(), path)
	}
}

func TestFriendsOfFriends(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	for _, body := range []string{
		`{"userID": 1, "name": "John Doe"}`,
		`{"userID": 2, "name": "Jane Smith"}`,
		`{"userID": 3, "name": "Bob Wilson"}`,
	} {
		require.Equal(t, http.StatusCreated, doRequest(router, "POST", "/users", body).Code)
	}

	assert.Equal(t, http.StatusOK, doRequest(router, "POST", "/users/1/friends/2", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "POST", "/users/2/friends/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, "POST", "/users/2/friends/2", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "POST", "/users/2/friends/99", "").Code)

	w := doRequest(router, "GET", "/users/1/friends-of-friends", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fofs []graph.FriendOfFriend
	decodeBody(t, w, &fofs)
	require.Len(t, fofs, 1)
	assert.Equal(t, int64(3), fofs[0].UserID)
	assert.Equal(t, 2, fofs[0].Distance)

	w = doRequest(router, "GET", "/recommendations?userID=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &fofs)
	assert.Len(t, fofs, 1)

	w = doRequest(router, "GET", "/recommendations", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventsAndAttendance(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	require.Equal(t, http.StatusCreated, doRequest(router, "POST", "/users", johnJSON).Code)
	w := doRequest(router, "POST", "/events", `{"id": 10, "name": "Tech Conference 2024", "location": "Convention Center", "date": "2024-06-15"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var event map[string]interface{}
	decodeBody(t, w, &event)
	assert.Equal(t, "Convention Center", event["location"])
	assert.Equal(t, "", event["description"])

	assert.Equal(t, http.StatusOK, doRequest(router, "POST", "/users/1/events/10", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "POST", "/users/1/events/11", "").Code)

	w = doRequest(router, "GET", "/users/1/events", "")
	var attended []map[string]interface{}
	decodeBody(t, w, &attended)
	assert.Len(t, attended, 1)

	w = doRequest(router, "PUT", "/events/10", `{"description": "Annual technology conference"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "GET", "/events/10", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "DELETE", "/events/10", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "GET", "/events/10", "").Code)
}

func TestBulkLoad(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	body := `{
		"users": [{"userID": 1, "name": "John Doe"}, {"userID": 2, "name": "Jane Smith"}],
		"events": [{"id": 10, "name": "Music Festival", "date": "2024-07-20"}],
		"relationships": [
			{"type": "IS_FRIENDS_WITH", "from": 1, "to": 2},
			{"type": "ATTENDED", "from": 1, "to": 10}
		]
	}`
	w := doRequest(router, "POST", "/bulk", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res graph.BulkLoadResult
	decodeBody(t, w, &res)
	assert.Equal(t, graph.BulkLoadResult{Users: 2, Events: 1, Relationships: 2}, res)

	w = doRequest(router, "POST", "/bulk", `{"relationships": [{"from": 1, "to": 2}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFailureIsHidden(t *testing.T) {
	store := newFakeStore()
	store.failAll = apperrors.NewGraphQueryFailed("get User", errors.New("bolt: connection reset"))
	router := setupRouter(store, nil)

	w := doRequest(router, "GET", "/users/1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestAdminEndpoints(t *testing.T) {
	router := setupRouter(newFakeStore(), nil)

	w := doRequest(router, "GET", "/admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var admin map[string]interface{}
	decodeBody(t, w, &admin)
	assert.Equal(t, "", admin["name"])
	assert.Nil(t, admin["dateOfBirth"])

	w = doRequest(router, "POST", "/admin/review", `{"requestID": "req-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var review map[string]interface{}
	decodeBody(t, w, &review)
	assert.Equal(t, true, review["approved"])

	assert.Equal(t, http.StatusBadRequest, doRequest(router, "POST", "/admin/review", `{}`).Code)
}

func TestPanicRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newFakeStore(), nil, nil, nil)
	router := NewRouter(h)
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := doRequest(router, "GET", "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}
