package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDashboardCounts(t *testing.T) {
	db := openServiceDB(t)

	articles, err := NewArticleService(db)
	require.NoError(t, err)
	published := newArticleInput("Publié")
	published.Published = true
	_, err = articles.Create(testCtx, published)
	require.NoError(t, err)
	_, err = articles.Create(testCtx, newArticleInput("Brouillon"))
	require.NoError(t, err)

	catalog, err := NewCatalogService(db)
	require.NoError(t, err)
	_, err = catalog.Create(testCtx, ServiceInput{Title: "Web", Description: "Sites"})
	require.NoError(t, err)

	stats, err := NewStatsService(db)
	require.NoError(t, err)

	got, err := stats.Dashboard(testCtx)
	require.NoError(t, err)
	require.Equal(t, DashboardStats{Services: 1, Articles: 2, PublishedArticles: 1}, got)
}
