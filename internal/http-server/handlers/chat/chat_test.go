package chat

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"github.com/Ro706/Project-MARS/internal/lib/api/cont"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCore struct {
	chats map[string]entity.Chat
}

func newFakeCore() *fakeCore {
	return &fakeCore{chats: make(map[string]entity.Chat)}
}

func (f *fakeCore) SaveChat(user *entity.User, messages []entity.Message) error {
	id := primitive.NewObjectID()
	f.chats[id.Hex()] = entity.Chat{ID: id, UserID: user.ID, Messages: messages, Date: time.Now()}
	return nil
}

func (f *fakeCore) ChatHistory(user *entity.User) ([]entity.Chat, error) {
	chats := make([]entity.Chat, 0)
	for _, chat := range f.chats {
		if chat.UserID == user.ID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (f *fakeCore) Chat(user *entity.User, chatID string) (*entity.Chat, error) {
	chat, ok := f.chats[chatID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if chat.UserID != user.ID {
		return nil, repository.ErrForbidden
	}
	return &chat, nil
}

func (f *fakeCore) DeleteChat(user *entity.User, chatID string) error {
	if _, err := f.Chat(user, chatID); err != nil {
		return err
	}
	delete(f.chats, chatID)
	return nil
}

// testRouter wires the chat routes behind a middleware that injects the
// given user, standing in for the authenticate middleware.
func testRouter(core Core, user *entity.User) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(cont.PutUser(req.Context(), user)))
		})
	})
	r.Post("/api/chat/save", Save(log, core))
	r.Get("/api/chat/history", History(log, core))
	r.Get("/api/chat/{id}", Get(log, core))
	r.Delete("/api/chat/{id}", Delete(log, core))
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testUser() *entity.User {
	return &entity.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
}

func TestSaveThenGet_PreservesOrder(t *testing.T) {
	core := newFakeCore()
	user := testUser()
	router := testRouter(core, user)

	body := `{"messages":[
		{"sender":"user","text":"hello","timestamp":"2025-06-01T10:00:00Z"},
		{"sender":"bot","text":"hi there","timestamp":"2025-06-01T10:00:05Z"},
		{"sender":"user","text":"bye","timestamp":"2025-06-01T10:01:00Z"}
	]}`
	rec := do(t, router, http.MethodPost, "/api/chat/save", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/chat/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.True(t, history.Success)
	require.Len(t, history.Chats, 1)

	rec = do(t, router, http.MethodGet, "/api/chat/"+history.Chats[0].ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Chat.Messages, 3)
	assert.Equal(t, "hello", detail.Chat.Messages[0].Text)
	assert.Equal(t, "hi there", detail.Chat.Messages[1].Text)
	assert.Equal(t, "bye", detail.Chat.Messages[2].Text)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC), detail.Chat.Messages[1].Timestamp.UTC())
}

func TestSave_EmptyMessages(t *testing.T) {
	core := newFakeCore()
	router := testRouter(core, testUser())

	for _, body := range []string{`{"messages":[]}`, `{}`, `not json`} {
		rec := do(t, router, http.MethodPost, "/api/chat/save", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Empty(t, core.chats)
}

func TestHistory_Empty(t *testing.T) {
	router := testRouter(newFakeCore(), testUser())

	rec := do(t, router, http.MethodGet, "/api/chat/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.True(t, history.Success)
	assert.NotNil(t, history.Chats)
	assert.Empty(t, history.Chats)
}

func TestGet_OtherOwner(t *testing.T) {
	core := newFakeCore()
	owner := testUser()

	ownerRouter := testRouter(core, owner)
	intruderRouter := testRouter(core, testUser())

	rec := do(t, ownerRouter, http.MethodPost, "/api/chat/save",
		`{"messages":[{"sender":"user","text":"private"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var chatID string
	for id := range core.chats {
		chatID = id
	}

	rec = do(t, intruderRouter, http.MethodGet, "/api/chat/"+chatID, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "private")

	rec = do(t, intruderRouter, http.MethodDelete, "/api/chat/"+chatID, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// still there for the owner
	rec = do(t, ownerRouter, http.MethodGet, "/api/chat/"+chatID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGet_UnknownID(t *testing.T) {
	router := testRouter(newFakeCore(), testUser())

	rec := do(t, router, http.MethodGet, "/api/chat/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_Repeated(t *testing.T) {
	core := newFakeCore()
	user := testUser()
	router := testRouter(core, user)

	rec := do(t, router, http.MethodPost, "/api/chat/save",
		`{"messages":[{"sender":"user","text":"to delete"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var chatID string
	for id := range core.chats {
		chatID = id
	}

	rec = do(t, router, http.MethodDelete, "/api/chat/"+chatID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/chat/"+chatID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
