package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type articlePayload struct {
	Title   string  `json:"title" validate:"notblank"`
	Author  string  `json:"author" validate:"required"`
	Website *string `json:"website" validate:"omitempty,url"`
	Rating  int     `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidateStructSuccess(t *testing.T) {
	site := "https://example.com"
	require.NoError(t, ValidateStruct(articlePayload{Title: "Hello", Author: "Awa", Website: &site, Rating: 4}))
}

func TestValidateStructFailures(t *testing.T) {
	site := "not a url"
	err := ValidateStruct(articlePayload{Title: "   ", Website: &site, Rating: 9})
	require.Error(t, err)

	vErrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, vErrs, 4)

	fields := map[string]string{}
	for _, e := range vErrs {
		fields[e.Field] = e.Message()
	}
	require.Equal(t, "title is required", fields["title"])
	require.Equal(t, "author is required", fields["author"])
	require.Equal(t, "website must be a valid URL", fields["website"])
	require.Equal(t, "rating must be at most 5", fields["rating"])
}

func TestNotBlankIgnoresNilPointer(t *testing.T) {
	type patch struct {
		Title *string `json:"title" validate:"omitempty,notblank"`
	}
	require.NoError(t, ValidateStruct(patch{}))

	blank := " "
	require.Error(t, ValidateStruct(patch{Title: &blank}))
}
