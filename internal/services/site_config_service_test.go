package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSiteConfigUpsert(t *testing.T) {
	svc, err := NewSiteConfigService(openServiceDB(t))
	require.NoError(t, err)

	entry, err := svc.Set(testCtx, "contact", json.RawMessage(`{"phone":"+226 70 00 00 00"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"phone":"+226 70 00 00 00"}`, string(entry.Value))

	entry, err = svc.Set(testCtx, "contact", json.RawMessage(`{"phone":"+226 71 11 11 11"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"phone":"+226 71 11 11 11"}`, string(entry.Value))

	_, err = svc.Set(testCtx, "hero_title", json.RawMessage(`"Bienvenue"`))
	require.NoError(t, err)

	all, err := svc.All(testCtx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.JSONEq(t, `"Bienvenue"`, string(all["hero_title"]))
	require.JSONEq(t, `{"phone":"+226 71 11 11 11"}`, string(all["contact"]))
}

func TestSiteConfigValidation(t *testing.T) {
	svc, err := NewSiteConfigService(openServiceDB(t))
	require.NoError(t, err)

	_, err = svc.Set(testCtx, " ", json.RawMessage(`1`))
	requireAppCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Set(testCtx, "contact", nil)
	requireAppCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Set(testCtx, "contact", json.RawMessage(`null`))
	requireAppCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Get(testCtx, "missing")
	require.ErrorIs(t, err, ErrConfigNotFound)
}
