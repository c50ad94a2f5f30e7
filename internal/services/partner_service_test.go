package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartnerNameIsUnique(t *testing.T) {
	svc, err := NewPartnerService(openServiceDB(t))
	require.NoError(t, err)

	first, err := svc.Create(testCtx, PartnerInput{Name: "Orange", Logo: "/uploads/orange.png", Website: ptr("https://orange.bf")})
	require.NoError(t, err)
	require.Equal(t, "https://orange.bf", *first.Website)

	_, err = svc.Create(testCtx, PartnerInput{Name: "Orange", Logo: "/uploads/other.png"})
	requireAppCode(t, err, "CONFLICT")

	second, err := svc.Create(testCtx, PartnerInput{Name: "Moov", Logo: "/uploads/moov.png"})
	require.NoError(t, err)
	require.Nil(t, second.Website)

	_, err = svc.Update(testCtx, second.ID, PartnerUpdate{Name: ptr("Orange")})
	requireAppCode(t, err, "CONFLICT")

	list, err := svc.List(testCtx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestPartnerWebsiteMustBeURL(t *testing.T) {
	svc, err := NewPartnerService(openServiceDB(t))
	require.NoError(t, err)

	_, err = svc.Create(testCtx, PartnerInput{Name: "Acme", Logo: "/logo.png", Website: ptr("not a url")})
	requireAppCode(t, err, "VALIDATION_ERROR")
}
