package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourhub/database/repository"
	"tourhub/database/repository/memory"
	"tourhub/handlers"
	"tourhub/middleware"
	"tourhub/models"
	"tourhub/services/rating"
	"tourhub/services/review"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "routes-test-secret"

type testServer struct {
	router *gin.Engine
	repos  *repository.Repositories
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := memory.NewDirectory()
	dob := time.Date(1992, 3, 4, 0, 0, 0, 0, time.UTC)
	complete := func(u models.User) models.User {
		u.Country, u.DateOfBirth, u.Gender, u.PhoneNumber = "KE", &dob, "other", "+254700000001"
		return u
	}
	dir.PutProvider(models.Provider{ID: "prov-1", ProviderName: "Lakeside Tours", Country: "KE"})
	dir.PutTour(models.CustomTour{
		ID:         "tour-1",
		ProviderID: "prov-1",
		TourName:   "Lake Naivasha Day Trip",
		StartDate:  time.Now().Add(-72 * time.Hour),
		EndDate:    time.Now().Add(-48 * time.Hour),
	})
	dir.PutUser(complete(models.User{ID: "tourist-1", UserType: utils.RoleTourist, FirstName: "Amina", LastName: "Otieno"}))
	dir.PutUser(complete(models.User{ID: "tourist-2", UserType: utils.RoleTourist, FirstName: "Ben", LastName: "Kariuki"}))
	dir.PutUser(complete(models.User{ID: "padmin-1", UserType: utils.RoleProviderAdmin, FirstName: "Pat", LastName: "Mwangi", ProviderID: "prov-1"}))
	dir.PutUser(complete(models.User{ID: "admin-1", UserType: utils.RoleSystemAdmin, FirstName: "Grace", LastName: "Njeri"}))
	dir.PutUser(models.User{ID: "admin-2", UserType: utils.RoleSystemAdmin, FirstName: "Sam"})
	dir.PutRegistration(models.Registration{ID: "reg-1", CustomTourID: "tour-1", TouristID: "tourist-1", Status: models.RegistrationApproved})

	repos := repository.NewMemoryRepositories(dir)
	strategy, err := rating.NewStrategy(rating.StrategyMemory, repos.Reviews)
	require.NoError(t, err)
	metrics := rating.NewMetrics(prometheus.NewRegistry())
	ratingSvc, err := rating.NewDefaultRatingService(strategy, repos.Ratings, repos.Providers, zap.NewNop(), rating.Options{Metrics: metrics})
	require.NoError(t, err)
	reviewSvc, err := review.NewDefaultReviewService(repos, ratingSvc, zap.NewNop(), review.Options{Metrics: metrics})
	require.NoError(t, err)

	rh := handlers.NewReviewHandler(reviewSvc)
	gh := handlers.NewRatingHandler(ratingSvc, time.Hour)
	hb := &handlers.HandlerBundle{
		UserRepo:                 repos.Users,
		JWTSecret:                secret,
		ListReviewsHandler:       rh.ListReviewsHandler,
		GetReviewHandler:         rh.GetReviewHandler,
		CreateReviewHandler:      rh.CreateReviewHandler,
		ModerateReviewHandler:    rh.ModerateReviewHandler,
		RespondToReviewHandler:   rh.RespondToReviewHandler,
		VoteReviewHandler:        rh.VoteReviewHandler,
		GetProviderRatingHandler: gh.GetProviderRatingHandler,
		HealthHandler:            handlers.HealthHandler,
	}

	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(zap.NewNop()))
	RegisterRoutes(r, hb)
	return &testServer{router: r, repos: repos}
}

func token(t *testing.T, userID, role, providerID string) string {
	t.Helper()
	tok, err := utils.GenerateToken(secret, utils.Identity{UserID: userID, Role: role, ProviderID: providerID}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, tok string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func TestReviewFlow(t *testing.T) {
	s := newTestServer(t)
	tourist := token(t, "tourist-1", utils.RoleTourist, "")
	admin := token(t, "admin-1", utils.RoleSystemAdmin, "")
	provider := token(t, "padmin-1", utils.RoleProviderAdmin, "prov-1")

	// First read creates the zero record.
	w, body := s.do(t, http.MethodGet, "/api/reviews/provider/prov-1/rating", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Provider rating retrieved successfully", body["message"])
	assert.Equal(t, float64(0), body["rating"].(map[string]any)["total_reviews"])

	create := map[string]any{
		"custom_tour_id":      "tour-1",
		"registration_id":     "reg-1",
		"overall_rating":      5,
		"organization_rating": 4,
		"title":               "Loved it",
	}
	w, body = s.do(t, http.MethodPost, "/api/reviews", tourist, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Review created successfully", body["message"])
	assert.NotContains(t, body, "warning")
	created := body["review"].(map[string]any)
	reviewID := created["id"].(string)
	assert.Equal(t, "pending", created["status"])

	w, _ = s.do(t, http.MethodPost, "/api/reviews", tourist, create)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPatch, "/api/reviews/"+reviewID+"/moderate", tourist, map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(t, http.MethodPatch, "/api/reviews/"+reviewID+"/moderate", admin, map[string]any{"status": "approved", "moderation_notes": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", body["review"].(map[string]any)["status"])

	w, body = s.do(t, http.MethodGet, "/api/reviews/provider/prov-1/rating", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rec := body["rating"].(map[string]any)
	assert.Equal(t, float64(1), rec["total_reviews"])
	assert.Equal(t, float64(5), rec["average_rating"])
	assert.Equal(t, float64(4), rec["average_organization"])

	w, body = s.do(t, http.MethodPost, "/api/reviews/"+reviewID+"/respond", provider, map[string]any{"response_text": "Thanks for visiting!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Response added successfully", body["message"])

	w, body = s.do(t, http.MethodPost, "/api/reviews/"+reviewID+"/vote", token(t, "tourist-2", utils.RoleTourist, ""), map[string]any{"helpful": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), body["helpful_votes"])

	w, body = s.do(t, http.MethodGet, "/api/reviews?provider_id=prov-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["reviews"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["total"])

	w, body = s.do(t, http.MethodGet, "/api/reviews/"+reviewID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Thanks for visiting!", body["review"].(map[string]any)["provider_response"].(map[string]any)["response_text"])
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)
	tourist := token(t, "tourist-1", utils.RoleTourist, "")
	admin := token(t, "admin-1", utils.RoleSystemAdmin, "")
	incompleteAdmin := token(t, "admin-2", utils.RoleSystemAdmin, "")
	unknownAdmin := token(t, "admin-x", utils.RoleSystemAdmin, "")

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		body   any
		status int
		code   string
	}{
		{"unknown review", http.MethodGet, "/api/reviews/nope", "", nil, http.StatusNotFound, "NOT_FOUND"},
		{"missing token", http.MethodPost, "/api/reviews", "", map[string]any{}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad body", http.MethodPost, "/api/reviews", tourist, map[string]any{"overall_rating": 9}, http.StatusBadRequest, "VALIDATION"},
		{"no registration", http.MethodPost, "/api/reviews", tourist, map[string]any{"custom_tour_id": "tour-1", "registration_id": "reg-x", "overall_rating": 3}, http.StatusNotFound, "NOT_FOUND"},
		{"moderate unknown", http.MethodPatch, "/api/reviews/nope/moderate", admin, map[string]any{"status": "approved"}, http.StatusNotFound, "NOT_FOUND"},
		{"moderate with incomplete profile", http.MethodPatch, "/api/reviews/nope/moderate", incompleteAdmin, map[string]any{"status": "approved"}, http.StatusForbidden, "FORBIDDEN"},
		{"moderate by unknown user", http.MethodPatch, "/api/reviews/nope/moderate", unknownAdmin, map[string]any{"status": "approved"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"moderate bad status", http.MethodPatch, "/api/reviews/nope/moderate", admin, map[string]any{"status": "pending"}, http.StatusBadRequest, "VALIDATION"},
		{"bad page", http.MethodGet, "/api/reviews?page=zero", "", nil, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := s.do(t, tt.method, tt.path, tt.tok, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
