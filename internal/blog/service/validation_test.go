package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestValidateEmail_Normalizes(t *testing.T) {
	email, err := validateEmail("  User@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", email)

	_, err = validateEmail("not an email")
	require.Error(t, err)
	_, err = validateEmail("")
	require.Error(t, err)
}

func TestValidateUsername(t *testing.T) {
	name, err := validateUsername("john_doe42")
	require.NoError(t, err)
	require.Equal(t, "john_doe42", name)

	for _, bad := range []string{"ab", "with space", "dash-ed", strings.Repeat("a", 31)} {
		_, err = validateUsername(bad)
		require.Error(t, err, "username %q", bad)
	}
}

func TestValidateAge(t *testing.T) {
	require.NoError(t, validateAge(13))
	require.NoError(t, validateAge(120))
	require.Error(t, validateAge(12))
	require.Error(t, validateAge(121))
}

func TestNormalizeRoles(t *testing.T) {
	// empty falls back to the default user role
	roles, err := normalizeRoles(nil)
	require.NoError(t, err)
	require.Equal(t, []model.UserRole{model.RoleUser}, roles)

	// duplicates collapse
	roles, err = normalizeRoles([]model.UserRole{model.RoleAdmin, model.RoleAdmin, model.RoleUser})
	require.NoError(t, err)
	require.Equal(t, []model.UserRole{model.RoleAdmin, model.RoleUser}, roles)

	_, err = normalizeRoles([]model.UserRole{"superuser"})
	require.Error(t, err)
	require.True(t, model.IsValidationError(err))
}

func TestValidateCategories(t *testing.T) {
	require.Error(t, validateCategories(nil))
	require.NoError(t, validateCategories([]string{"Technology"}))
	require.NoError(t, validateCategories([]string{"a", "b", "c", "d", "e"}))
	require.Error(t, validateCategories([]string{"a", "b", "c", "d", "e", "f"}))
	require.Error(t, validateCategories([]string{" "}))
}

func TestValidateTags(t *testing.T) {
	require.NoError(t, validateTags(nil))
	require.Error(t, validateTags(make([]string, 11)))
}

func TestValidateFeaturedImage(t *testing.T) {
	require.NoError(t, validateFeaturedImage(""))
	require.NoError(t, validateFeaturedImage("https://cdn.example.com/pic.PNG"))
	require.Error(t, validateFeaturedImage("https://cdn.example.com/doc.pdf"))
}

func TestValidatePostStatus(t *testing.T) {
	require.NoError(t, validatePostStatus(model.PostStatusDraft))
	require.NoError(t, validatePostStatus(model.PostStatusPublished))
	require.NoError(t, validatePostStatus(model.PostStatusArchived))
	require.Error(t, validatePostStatus("pending"))
}

func TestValidateSEO(t *testing.T) {
	require.NoError(t, validateSEO(&model.SEOData{
		MetaTitle:       strings.Repeat("t", 60),
		MetaDescription: strings.Repeat("d", 160),
		Keywords:        make([]string, 10),
		CanonicalURL:    "https://example.com/post",
	}))

	require.Error(t, validateSEO(&model.SEOData{MetaTitle: strings.Repeat("t", 61)}))
	require.Error(t, validateSEO(&model.SEOData{MetaDescription: strings.Repeat("d", 161)}))
	require.Error(t, validateSEO(&model.SEOData{Keywords: make([]string, 11)}))
	require.Error(t, validateSEO(&model.SEOData{CanonicalURL: "not a url"}))
}

func TestValidateCommentContent(t *testing.T) {
	content, err := validateCommentContent("  fine comment  ")
	require.NoError(t, err)
	require.Equal(t, "fine comment", content)

	_, err = validateCommentContent("   ")
	require.Error(t, err)
	_, err = validateCommentContent(strings.Repeat("x", 1001))
	require.Error(t, err)
}

func TestValidateProfile(t *testing.T) {
	require.NoError(t, validateProfile(&model.UserProfile{
		Bio:     strings.Repeat("b", 500),
		Avatar:  "https://cdn.example.com/me.webp",
		Website: "https://example.com",
	}))

	require.Error(t, validateProfile(&model.UserProfile{Bio: strings.Repeat("b", 501)}))
	require.Error(t, validateProfile(&model.UserProfile{Avatar: "https://example.com/avatar"}))
	require.Error(t, validateProfile(&model.UserProfile{Website: "nope"}))
}
