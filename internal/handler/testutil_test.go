package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/dwproject/portfolio-api/internal/domain"
	"github.com/dwproject/portfolio-api/internal/handler"
	"github.com/dwproject/portfolio-api/internal/service"
)

// In-memory stores standing in for the SQL repositories. Both count calls so
// tests can assert that rejected requests never reach the data layer.

type memUserStore struct {
	nextID int64
	users  map[int64]*domain.User
	calls  int
}

func (s *memUserStore) Create(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
	s.calls++
	s.nextID++
	u := &domain.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memUserStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.calls++
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.calls++
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memUserStore) Exists(_ context.Context, username, email string) (bool, error) {
	s.calls++
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memProjectStore struct {
	nextID int64
	rows   map[int64]*memProjectRow
	clock  time.Time
	calls  int
}

type memProjectRow struct {
	p     domain.Project
	image []byte
}

func (s *memProjectStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memProjectStore) render(row *memProjectRow) *domain.Project {
	p := row.p
	p.Image = domain.EncodeImage(row.image)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return &p
}

func (s *memProjectStore) Insert(_ context.Context, p domain.Project) (*domain.Project, error) {
	s.calls++
	row := &memProjectRow{p: p}
	if p.Image != nil {
		raw, err := domain.DecodeImage(*p.Image)
		if err != nil {
			return nil, err
		}
		row.image = raw
	}
	s.nextID++
	row.p.ID = s.nextID
	row.p.Image = nil
	row.p.CreatedAt = s.tick()
	row.p.UpdatedAt = row.p.CreatedAt
	s.rows[row.p.ID] = row
	return s.render(row), nil
}

func (s *memProjectStore) ListActive(_ context.Context, ownerID int64) ([]domain.Project, error) {
	s.calls++
	return s.list(ownerID, false), nil
}

func (s *memProjectStore) ListDeleted(_ context.Context, ownerID int64) ([]domain.Project, error) {
	s.calls++
	return s.list(ownerID, true), nil
}

func (s *memProjectStore) list(ownerID int64, deleted bool) []domain.Project {
	out := make([]domain.Project, 0)
	for _, row := range s.rows {
		if row.p.OwnerID != ownerID || row.p.Deleted() != deleted {
			continue
		}
		out = append(out, *s.render(row))
	}
	sort.Slice(out, func(i, j int) bool {
		if deleted {
			return out[i].DeletedAt.After(*out[j].DeletedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *memProjectStore) FindActive(_ context.Context, id int64) (*domain.Project, error) {
	s.calls++
	row, ok := s.rows[id]
	if !ok || row.p.Deleted() {
		return nil, domain.ErrNotFound
	}
	return s.render(row), nil
}

func (s *memProjectStore) FindAny(_ context.Context, id int64) (*domain.Project, error) {
	s.calls++
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.render(row), nil
}

func (s *memProjectStore) Update(_ context.Context, id int64, p domain.Project) (*domain.Project, error) {
	s.calls++
	row, ok := s.rows[id]
	if !ok || row.p.Deleted() {
		return nil, domain.ErrNotFound
	}
	if p.Image != nil {
		raw, err := domain.DecodeImage(*p.Image)
		if err != nil {
			return nil, err
		}
		row.image = raw
	} else {
		row.image = nil
	}
	row.p.ProjectName = p.ProjectName
	row.p.StartDate = p.StartDate
	row.p.EndDate = p.EndDate
	row.p.Description = p.Description
	row.p.Technologies = p.Technologies
	row.p.UpdatedAt = s.tick()
	return s.render(row), nil
}

func (s *memProjectStore) SoftDelete(_ context.Context, id int64) (*domain.Project, error) {
	s.calls++
	row, ok := s.rows[id]
	if !ok || row.p.Deleted() {
		return nil, domain.ErrNotFound
	}
	now := s.tick()
	row.p.DeletedAt = &now
	return s.render(row), nil
}

func (s *memProjectStore) Restore(_ context.Context, id int64) (*domain.Project, error) {
	s.calls++
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	row.p.DeletedAt = nil
	return s.render(row), nil
}

func (s *memProjectStore) HardDelete(_ context.Context, id int64) error {
	s.calls++
	if _, ok := s.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type testServer struct {
	e        *echo.Echo
	users    *memUserStore
	projects *memProjectStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := &memUserStore{users: make(map[int64]*domain.User)}
	projects := &memProjectStore{
		rows:  make(map[int64]*memProjectRow),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	authSvc := service.NewAuthService(users, service.AuthConfig{JWTSecret: "test-secret"})
	projectSvc := service.NewProjectService(projects)

	return &testServer{
		e:        handler.NewRouter(authSvc, projectSvc, []string{"http://localhost:5173"}),
		users:    users,
		projects: projects,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

// registerUser registers a user through the API and returns its token.
func (ts *testServer) registerUser(t *testing.T, username, email, password string) string {
	t.Helper()

	rec, env := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
