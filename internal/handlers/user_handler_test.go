package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/handlers"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/service/mocks"
)

func newUserRouter(users *mocks.UserService, accounts *mocks.AccountService) *chi.Mux {
	h := handlers.NewUserHandler(users, accounts)
	r := chi.NewRouter()
	r.Use(middleware.DevAdminMiddleware)
	r.Get("/admin/users", h.ListUsers)
	r.Get("/admin/users/{user_id}", h.GetUser)
	r.Delete("/admin/users/{user_ref}", h.DeleteUser)
	r.Patch("/admin/users/{user_id}/status", h.UpdateUserStatus)
	r.Post("/admin/users/{user_id}/reset-progress", h.ResetProgress)
	r.Get("/admin/users/{user_id}/collections", h.ListCollections)
	r.Get("/admin/stats", h.GetStats)
	r.Get("/admin/badges", h.ListBadges)
	return r
}

func TestUserHandler_ListUsers(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMock  func(users *mocks.UserService)
		wantStatus int
		wantUsers  int
		wantCode   string
	}{
		{
			name: "first page",
			url:  "/admin/users?limit=2",
			setupMock: func(users *mocks.UserService) {
				users.On("List", mock.Anything, "", 2).
					Return(&model.UserPage{Users: []model.User{{ID: "a"}, {ID: "b"}}, NextCursor: "b"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantUsers:  2,
		},
		{
			name: "empty page encodes an empty list",
			url:  "/admin/users?cursor=zz",
			setupMock: func(users *mocks.UserService) {
				users.On("List", mock.Anything, "zz", 0).Return(&model.UserPage{}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantUsers:  0,
		},
		{
			name:       "bad limit",
			url:        "/admin/users?limit=ten",
			setupMock:  func(*mocks.UserService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_QUERY_PARAM",
		},
		{
			name: "backend down",
			url:  "/admin/users",
			setupMock: func(users *mocks.UserService) {
				users.On("List", mock.Anything, "", 0).
					Return(nil, fmt.Errorf("list: %w", model.ErrBackendUnavailable)).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "BACKEND_UNAVAILABLE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := mocks.NewUserService(t)
			tc.setupMock(users)

			rr := serve(newUserRouter(users, mocks.NewAccountService(t)), createRequest(t, http.MethodGet, tc.url, nil, nil))

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeError(t, rr).Code)
				return
			}
			var page model.UserPage
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
			assert.NotNil(t, page.Users)
			assert.Len(t, page.Users, tc.wantUsers)
		})
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	users := mocks.NewUserService(t)
	users.On("Get", mock.Anything, "ghost").Return(nil, model.ErrNotFound).Once()

	rr := serve(newUserRouter(users, mocks.NewAccountService(t)), createRequest(t, http.MethodGet, "/admin/users/ghost", nil, nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rr).Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		result     *model.DeleteUserResult
		err        error
		wantStatus int
	}{
		{
			name: "by uid",
			ref:  "u1",
			result: &model.DeleteUserResult{
				DeleteAccountResult: model.DeleteAccountResult{FirestoreDeleted: true, AuthDeleted: true, DeletedDocuments: 7, Success: true},
				ResolvedID:          "u1",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "partial failure is still 200",
			ref:  "ann@example.com",
			result: &model.DeleteUserResult{
				DeleteAccountResult: model.DeleteAccountResult{
					FirestoreDeleted: true,
					DeletedDocuments: 3,
					Success:          true,
					Failures:         []model.Failure{{Scope: "auth", Error: "quota"}},
				},
				ResolvedID: "u9",
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "nothing could be deleted",
			ref:        "u2",
			err:        fmt.Errorf("delete user u2: %w", model.ErrBackendUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "malformed id",
			ref:        "bad%2Fid",
			err:        model.NewAppError("INVALID_USER_ID", "invalid user id", "user_id", model.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			accounts := mocks.NewAccountService(t)
			accounts.On("DeleteUser", mock.Anything, mock.AnythingOfType("string")).Return(tc.result, tc.err).Once()

			rr := serve(newUserRouter(mocks.NewUserService(t), accounts), createRequest(t, http.MethodDelete, "/admin/users/"+tc.ref, nil, nil))

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.result != nil {
				var got model.DeleteUserResult
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, *tc.result, got)
			}
		})
	}
}

func TestUserHandler_UpdateUserStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(accounts *mocks.AccountService)
		wantStatus int
		wantField  string
	}{
		{
			name: "disable",
			body: model.UpdateUserStatusRequest{Status: "DISABLED"},
			setupMock: func(accounts *mocks.AccountService) {
				accounts.On("UpdateUserStatus", mock.Anything, "u1", &model.UpdateUserStatusRequest{Status: "DISABLED"}).
					Return(&model.UserStatusResult{UserID: "u1", Status: model.UserStatusDisabled, AuthUpdated: true}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown status",
			body:       model.UpdateUserStatusRequest{Status: "BANNED"},
			setupMock:  func(*mocks.AccountService) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "status",
		},
		{
			name:       "missing body",
			body:       nil,
			setupMock:  func(*mocks.AccountService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"status":`,
			setupMock:  func(*mocks.AccountService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			accounts := mocks.NewAccountService(t)
			tc.setupMock(accounts)

			rr := serve(newUserRouter(mocks.NewUserService(t), accounts), createRequest(t, http.MethodPatch, "/admin/users/u1/status", tc.body, nil))

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantField != "" {
				assert.Equal(t, tc.wantField, decodeError(t, rr).Field)
			}
		})
	}
}

func TestUserHandler_ResetProgress(t *testing.T) {
	accounts := mocks.NewAccountService(t)
	accounts.On("ResetProgress", mock.Anything, "u1").
		Return(&model.ResetProgressResult{DeletedDocuments: 12, DeletedCollections: 3, Success: true}, nil).Once()

	rr := serve(newUserRouter(mocks.NewUserService(t), accounts), createRequest(t, http.MethodPost, "/admin/users/u1/reset-progress", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.ResetProgressResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 12, got.DeletedDocuments)
}

func TestUserHandler_StatsBadgesCollections(t *testing.T) {
	users := mocks.NewUserService(t)
	users.On("Stats", mock.Anything).Return(&model.Stats{Users: 10, Badges: 2, Feedback: 1, Languages: 3}, nil).Once()
	users.On("Badges", mock.Anything).Return([]model.Badge{}, nil).Once()
	users.On("Collections", mock.Anything, "u1").Return(nil, nil).Once()
	router := newUserRouter(users, mocks.NewAccountService(t))

	rr := serve(router, createRequest(t, http.MethodGet, "/admin/stats", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"users":10,"badges":2,"feedback":1,"languages":3}`, rr.Body.String())

	rr = serve(router, createRequest(t, http.MethodGet, "/admin/badges", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = serve(router, createRequest(t, http.MethodGet, "/admin/users/u1/collections", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestUserHandler_UnexpectedErrorIsHidden(t *testing.T) {
	users := mocks.NewUserService(t)
	users.On("Stats", mock.Anything).Return(nil, errors.New("pq: connection reset")).Once()

	rr := serve(newUserRouter(users, mocks.NewAccountService(t)), createRequest(t, http.MethodGet, "/admin/stats", nil, nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "pq:")
}
