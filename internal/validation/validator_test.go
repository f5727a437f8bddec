package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseInput struct {
	Title string `json:"title" validate:"required,min=5,max=255"`
}

type pageInput struct {
	ID      string `param:"id" validate:"required,uuid"`
	Page    int    `query:"page" validate:"omitempty,min=1"`
	OrderBy string `query:"orderBy" validate:"omitempty,oneof=id title"`
}

func TestValidate_PortugueseMessages(t *testing.T) {
	v, err := New(LocalePortuguese)
	require.NoError(t, err)

	err = v.Validate(&courseInput{Title: "Node"})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "title", verrs[0].Field)
	assert.Equal(t, "Título deve ter no mínimo 5 caracteres", verrs[0].Message)
}

func TestValidate_EnglishMessages(t *testing.T) {
	v, err := New(LocaleEnglish)
	require.NoError(t, err)

	err = v.Validate(&courseInput{})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Title is required", verrs[0].Message)
}

func TestValidate_Valid(t *testing.T) {
	v, err := New(LocalePortuguese)
	require.NoError(t, err)

	assert.NoError(t, v.Validate(&courseInput{Title: "Node.js"}))
	assert.NoError(t, v.Validate(&pageInput{ID: "8a4cc5d5-1f43-4f5b-9d59-22a64f55a3b1"}))
}

func TestValidate_FieldNamesFollowWireTags(t *testing.T) {
	v, err := New(LocaleEnglish)
	require.NoError(t, err)

	err = v.Validate(&pageInput{ID: "42", Page: -1, OrderBy: "created"})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)

	byField := map[string]string{}
	for _, fe := range verrs {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "ID must be a valid UUID", byField["id"])
	assert.Equal(t, "Page must be 1 or greater", byField["page"])
	assert.Equal(t, "Order by must be one of [id title]", byField["orderBy"])
}

func TestValidate_UnlabelledFieldUsesWireName(t *testing.T) {
	v, err := New(LocaleEnglish)
	require.NoError(t, err)

	type payload struct {
		Nickname string `json:"nickname" validate:"required"`
	}
	err = v.Validate(&payload{})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "nickname is required", verrs[0].Message)
}

func TestNew_UnsupportedLocale(t *testing.T) {
	_, err := New("xx")
	assert.Error(t, err)
}

func TestErrors_Error(t *testing.T) {
	v, err := New(LocaleEnglish)
	require.NoError(t, err)

	err = v.Validate(&courseInput{Title: "abc"})
	assert.Equal(t, "Title must be at least 5 characters long", err.Error())
}
