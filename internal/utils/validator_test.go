package utils

import (
	"testing"

	"mymixes/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructAcceptsValidRecipe(t *testing.T) {
	v := NewValidator()
	req := domain.RecipeRequest{
		Title:       "Whiskey Sour",
		Slug:        "whiskey-sour",
		Method:      "Shake and strain",
		Ingredients: []domain.IngredientInput{{Name: "whiskey", Amount: "2 oz"}},
	}

	require.NoError(t, ValidateStruct(v, req))
}

func TestValidateStructReportsIssuesByJSONName(t *testing.T) {
	v := NewValidator()
	req := domain.RecipeRequest{
		Title:       "W",
		Slug:        "whiskey-sour",
		Method:      "Shake",
		Ingredients: []domain.IngredientInput{{Amount: ""}},
	}

	err := ValidateStruct(v, req)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]string{}
	for _, issue := range verr.Issues {
		fields[issue.Field] = issue.Tag
	}
	assert.Equal(t, "min", fields["title"])
	assert.Equal(t, "required_without", fields["ingredients[0].name"])
	assert.Equal(t, "required", fields["ingredients[0].amount"])
	assert.NotContains(t, fields, "method")
}

func TestValidateStructAcceptsTypeIDWithoutName(t *testing.T) {
	v := NewValidator()
	typeID := uint(3)
	req := domain.RecipeRequest{
		Title:       "Daiquiri",
		Slug:        "daiquiri",
		Method:      "Shake hard",
		Ingredients: []domain.IngredientInput{{TypeID: &typeID, Amount: "2 oz"}},
	}

	require.NoError(t, ValidateStruct(v, req))
}

func TestValidateStructRatingBounds(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		rating int
		ok     bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
	}
	for _, tt := range tests {
		err := ValidateStruct(v, domain.ReviewRequest{Rating: tt.rating, Comment: "nice"})
		if tt.ok {
			assert.NoError(t, err, "rating %d", tt.rating)
		} else {
			assert.Error(t, err, "rating %d", tt.rating)
		}
	}
}

func TestValidateStructAnonymousNameLength(t *testing.T) {
	v := NewValidator()
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	err := ValidateStruct(v, domain.AnonymousReviewRequest{Name: string(long), Rating: 3, Comment: "ok"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Issues[0].Field)
	assert.Equal(t, "max", verr.Issues[0].Tag)
}
