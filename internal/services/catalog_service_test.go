package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogServiceCRUD(t *testing.T) {
	svc, err := NewCatalogService(openServiceDB(t))
	require.NoError(t, err)

	first, err := svc.Create(testCtx, ServiceInput{
		Title:       "Développement web",
		Description: "Sites et applications",
		Features:    []string{"SEO", " ", "SEO", "Responsive"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"SEO", "Responsive"}, []string(first.Features))

	_, err = svc.Create(testCtx, ServiceInput{Title: "Design", Description: "Identité"})
	require.NoError(t, err)

	list, err := svc.List(testCtx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)

	updated, err := svc.Update(testCtx, first.ID, ServiceUpdate{Features: &[]string{"Maintenance"}})
	require.NoError(t, err)
	require.Equal(t, []string{"Maintenance"}, []string(updated.Features))
	require.Equal(t, "Développement web", updated.Title)

	_, err = svc.Delete(testCtx, first.ID)
	require.NoError(t, err)

	_, err = svc.Get(testCtx, first.ID)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCatalogServiceValidation(t *testing.T) {
	svc, err := NewCatalogService(openServiceDB(t))
	require.NoError(t, err)

	_, err = svc.Create(testCtx, ServiceInput{Title: "Design"})
	requireAppCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Update(testCtx, 1, ServiceUpdate{Title: ptr("  ")})
	requireAppCode(t, err, "VALIDATION_ERROR")
}
