package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/handlers"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service/mocks"
)

func TestFeedbackHandler_ListFeedback(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMock  func(fb *mocks.FeedbackService)
		wantStatus int
	}{
		{
			name: "unresolved only",
			url:  "/admin/feedback?unresolved=true&limit=20",
			setupMock: func(fb *mocks.FeedbackService) {
				fb.On("List", mock.Anything, true, "", 20).
					Return(&model.FeedbackPage{Entries: []model.FeedbackEntry{{UserID: "u1", Rating: 2}}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "defaults",
			url:  "/admin/feedback",
			setupMock: func(fb *mocks.FeedbackService) {
				fb.On("List", mock.Anything, false, "", 0).Return(&model.FeedbackPage{}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad flag",
			url:        "/admin/feedback?unresolved=maybe",
			setupMock:  func(*mocks.FeedbackService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := mocks.NewFeedbackService(t)
			tc.setupMock(fb)
			r := chi.NewRouter()
			r.Get("/admin/feedback", handlers.NewFeedbackHandler(fb).ListFeedback)

			rr := serve(r, createRequest(t, http.MethodGet, tc.url, nil, nil))

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if rr.Code == http.StatusOK {
				var page model.FeedbackPage
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
				assert.NotNil(t, page.Entries)
			}
		})
	}
}

func TestFeedbackHandler_ResolveFeedback(t *testing.T) {
	fb := mocks.NewFeedbackService(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	fb.On("Resolve", mock.Anything, "u1", &model.ResolveFeedbackRequest{Note: "fixed in 1.4"}).
		Return(&model.FeedbackEntry{UserID: "u1", Resolved: true, ResolvedBy: "ops", ResolvedAt: &now}, nil).Once()
	fb.On("Resolve", mock.Anything, "ghost", &model.ResolveFeedbackRequest{}).Return(nil, model.ErrNotFound).Once()

	r := chi.NewRouter()
	r.Patch("/admin/feedback/{user_id}/resolve", handlers.NewFeedbackHandler(fb).ResolveFeedback)

	rr := serve(r, createRequest(t, http.MethodPatch, "/admin/feedback/u1/resolve", model.ResolveFeedbackRequest{Note: "fixed in 1.4"}, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got model.FeedbackEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Resolved)
	assert.Equal(t, "ops", got.ResolvedBy)

	rr = serve(r, createRequest(t, http.MethodPatch, "/admin/feedback/ghost/resolve", nil, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuditHandler_ListAudit(t *testing.T) {
	audit := mocks.NewAuditService(t)
	audit.On("List", mock.Anything, repository.AuditFilter{Operation: model.OpDeleteUser, Limit: 5}).
		Return([]*model.AuditRecord{{Operation: model.OpDeleteUser, Subject: "u1", Success: true}}, nil).Once()
	audit.On("List", mock.Anything, repository.AuditFilter{}).Return(nil, nil).Once()

	r := chi.NewRouter()
	r.Get("/admin/audit", handlers.NewAuditHandler(audit).ListAudit)

	rr := serve(r, createRequest(t, http.MethodGet, "/admin/audit?operation=delete_user&limit=5", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var records []model.AuditRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0].Subject)

	rr = serve(r, createRequest(t, http.MethodGet, "/admin/audit", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
