package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/handlers/testutil"
	"github.com/vitrine-studio/vitrine/internal/services"
)

func TestDashboardStats(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Login()

	require.Equal(t, http.StatusUnauthorized, env.Request(http.MethodGet, "/api/admin/stats", nil, "").Code)

	for _, article := range []map[string]any{
		{"title": "Brouillon", "excerpt": "e", "content": "c", "category": "News", "author": "A"},
		{"title": "Publié", "excerpt": "e", "content": "c", "category": "News", "author": "A", "published": true},
	} {
		w := env.Request(http.MethodPost, "/api/articles", article, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := env.Request(http.MethodPost, "/api/services", map[string]any{"title": "SEO", "description": "Référencement"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.Request(http.MethodGet, "/api/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats services.DashboardStats
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &stats)
	require.Equal(t, services.DashboardStats{Services: 1, Articles: 2, PublishedArticles: 1}, stats)
}
