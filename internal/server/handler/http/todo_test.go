package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ameleshko/TodoKeeper/internal/middleware"
	"github.com/ameleshko/TodoKeeper/internal/models"
	"github.com/ameleshko/TodoKeeper/internal/repository"
)

// fakeTodoService implements TodoService for testing.
type fakeTodoService struct {
	createTodo models.Todo
	getTodo    models.Todo
	todos      []models.Todo
	updated    models.Todo
	done       models.DoneTodo
	dones      []models.DoneTodo
	err        error

	gotUserID  int64
	gotID      int64
	gotContent string
}

func (f *fakeTodoService) Create(ctx context.Context, userID int64, content string) (models.Todo, error) {
	f.gotUserID, f.gotContent = userID, content
	return f.createTodo, f.err
}
func (f *fakeTodoService) Get(ctx context.Context, userID, id int64) (models.Todo, error) {
	f.gotUserID, f.gotID = userID, id
	return f.getTodo, f.err
}
func (f *fakeTodoService) List(ctx context.Context, userID int64) ([]models.Todo, error) {
	f.gotUserID = userID
	return f.todos, f.err
}
func (f *fakeTodoService) Update(ctx context.Context, userID, id int64, content string) (models.Todo, error) {
	f.gotUserID, f.gotID, f.gotContent = userID, id, content
	return f.updated, f.err
}
func (f *fakeTodoService) Delete(ctx context.Context, userID, id int64) error {
	f.gotUserID, f.gotID = userID, id
	return f.err
}
func (f *fakeTodoService) MarkDone(ctx context.Context, userID, id int64) (models.DoneTodo, error) {
	f.gotUserID, f.gotID = userID, id
	return f.done, f.err
}
func (f *fakeTodoService) CreateDone(ctx context.Context, userID int64, content string) (models.DoneTodo, error) {
	f.gotUserID, f.gotContent = userID, content
	return f.dones[0], f.err
}
func (f *fakeTodoService) ListDone(ctx context.Context, userID int64) ([]models.DoneTodo, error) {
	f.gotUserID = userID
	return f.dones, f.err
}

// authedRequest builds a request carrying an authenticated user and,
// optionally, a chi {id} URL parameter.
func authedRequest(method, target, id string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	user := middleware.User{ID: 7, Username: "alice"}
	ctx := middleware.WithUser(req.Context(), user)

	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestTodoHandler_Create(t *testing.T) {
	svc := &fakeTodoService{createTodo: models.Todo{ID: 1, Content: "buy milk", UserID: 7}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	// user_id in the body must be ignored in favor of the caller's identity
	req := authedRequest("POST", "/todos/", "", `{"content":"buy milk","user_id":999}`)
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotUserID != 7 {
		t.Errorf("expected caller's user id 7, got %d", svc.gotUserID)
	}

	var todo models.Todo
	if err := json.NewDecoder(rec.Body).Decode(&todo); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if todo.UserID != 7 || todo.Content != "buy milk" {
		t.Errorf("unexpected todo: %+v", todo)
	}
}

func TestTodoHandler_Create_EmptyContent(t *testing.T) {
	h := &TodoHandler{TodoService: &fakeTodoService{}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/todos/", "", `{"content":""}`)
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTodoHandler_Create_NoIdentity(t *testing.T) {
	h := &TodoHandler{TodoService: &fakeTodoService{}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos/", bytes.NewBufferString(`{"content":"x"}`))
	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTodoHandler_Get(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		service      *fakeTodoService
		expectedCode int
	}{
		{
			name:         "invalid id",
			id:           "abc",
			service:      &fakeTodoService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "not found",
			id:           "1",
			service:      &fakeTodoService{err: repository.ErrNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "found",
			id:           "1",
			service:      &fakeTodoService{getTodo: models.Todo{ID: 1, Content: "buy milk", UserID: 7}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &TodoHandler{TodoService: tt.service, Log: zap.NewNop()}
			rec := httptest.NewRecorder()
			req := authedRequest("GET", "/todos/"+tt.id+"/", tt.id, "")
			h.Get(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusOK && tt.service.gotUserID != 7 {
				t.Errorf("expected owner-scoped lookup for user 7, got %d", tt.service.gotUserID)
			}
		})
	}
}

func TestTodoHandler_List(t *testing.T) {
	svc := &fakeTodoService{todos: []models.Todo{
		{ID: 1, Content: "a", UserID: 7},
		{ID: 2, Content: "b", UserID: 7},
	}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/todos/", "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var todos []models.Todo
	if err := json.NewDecoder(rec.Body).Decode(&todos); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(todos) != 2 {
		t.Errorf("expected 2 todos, got %d", len(todos))
	}
}

func TestTodoHandler_Update(t *testing.T) {
	svc := &fakeTodoService{updated: models.Todo{ID: 1, Content: "new", UserID: 7}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := authedRequest("PUT", "/todos/1/", "1", `{"content":"new"}`)
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUserID != 7 || svc.gotID != 1 || svc.gotContent != "new" {
		t.Errorf("unexpected call: user=%d id=%d content=%q", svc.gotUserID, svc.gotID, svc.gotContent)
	}
}

func TestTodoHandler_Update_NotFound(t *testing.T) {
	h := &TodoHandler{TodoService: &fakeTodoService{err: repository.ErrNotFound}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := authedRequest("PUT", "/todos/1/", "1", `{"content":"new"}`)
	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	svc := &fakeTodoService{}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.Delete(rec, authedRequest("DELETE", "/todos/1/", "1", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotID != 1 {
		t.Errorf("expected delete of id 1, got %d", svc.gotID)
	}
}

func TestTodoHandler_MarkDone(t *testing.T) {
	svc := &fakeTodoService{done: models.DoneTodo{ID: 3, Content: "buy milk", UserID: 7}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.MarkDone(rec, authedRequest("PUT", "/todos/1/done/", "1", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var done models.DoneTodo
	if err := json.NewDecoder(rec.Body).Decode(&done); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if done.ID != 3 || done.Content != "buy milk" {
		t.Errorf("unexpected done todo: %+v", done)
	}
}

func TestTodoHandler_MarkDone_NotFound(t *testing.T) {
	h := &TodoHandler{TodoService: &fakeTodoService{err: repository.ErrNotFound}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.MarkDone(rec, authedRequest("PUT", "/todos/9/done/", "9", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTodoHandler_ListDone_Empty(t *testing.T) {
	svc := &fakeTodoService{dones: []models.DoneTodo{}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.ListDone(rec, authedRequest("GET", "/done_todos/", "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// empty result is a JSON list, not an object
	if got := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(got, []byte("[]")) {
		t.Errorf("expected empty list, got %q", got)
	}
}

func TestTodoHandler_CreateDone(t *testing.T) {
	svc := &fakeTodoService{dones: []models.DoneTodo{{ID: 4, Content: "already done", UserID: 7}}}
	h := &TodoHandler{TodoService: svc, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/done_todos/", "", `{"content":"already done"}`)
	h.CreateDone(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotUserID != 7 || svc.gotContent != "already done" {
		t.Errorf("unexpected call: user=%d content=%q", svc.gotUserID, svc.gotContent)
	}
}
