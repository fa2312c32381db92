package service

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

const (
	minUserAge = 13
	maxUserAge = 120

	maxBioLength             = 500
	maxPostTitleLength       = 200
	maxExcerptLength         = 300
	maxPostCategories        = 5
	maxPostTags              = 10
	maxCommentLength         = 1000
	maxMetaTitleLength       = 60
	maxMetaDescriptionLength = 160
	maxSEOKeywords           = 10
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	imageURLPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

	knownRoles = map[model.UserRole]struct{}{
		model.RoleUser:      {},
		model.RoleAdmin:     {},
		model.RoleModerator: {},
	}
)

// validateEmail parses and lowercases an email address.
func validateEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", model.NewValidationError("email", "is required")
	}
	parsed, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", model.NewValidationError("email", "malformed address")
	}

	return strings.ToLower(parsed.Address), nil
}

// validateUsername enforces the alphanumeric+underscore 3-30 rune handle rule.
func validateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if !usernamePattern.MatchString(trimmed) {
		return "", model.NewValidationError("username",
			"must be 3-30 chars of letters, digits or underscore")
	}

	return trimmed, nil
}

func validateAge(age int) error {
	if age < minUserAge || age > maxUserAge {
		return model.NewValidationError("age", "must be within [%d, %d]", minUserAge, maxUserAge)
	}

	return nil
}

// normalizeRoles deduplicates roles and falls back to the default user role.
func normalizeRoles(roles []model.UserRole) ([]model.UserRole, error) {
	if len(roles) == 0 {
		return []model.UserRole{model.RoleUser}, nil
	}

	seen := map[model.UserRole]struct{}{}
	normalized := make([]model.UserRole, 0, len(roles))
	for _, r := range roles {
		if _, ok := knownRoles[r]; !ok {
			return nil, model.NewValidationError("roles", "unknown role %q", r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		normalized = append(normalized, r)
	}

	return normalized, nil
}

func validateProfile(profile *model.UserProfile) error {
	if utf8.RuneCountInString(profile.Bio) > maxBioLength {
		return model.NewValidationError("profile.bio", "exceeds max length %d", maxBioLength)
	}
	if profile.Avatar != "" && !imageURLPattern.MatchString(profile.Avatar) {
		return model.NewValidationError("profile.avatar", "must be an image url")
	}
	if profile.Website != "" {
		if _, err := url.ParseRequestURI(profile.Website); err != nil {
			return model.NewValidationError("profile.website", "malformed url")
		}
	}

	return nil
}

func validatePostTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", model.NewValidationError("title", "is required")
	}
	if utf8.RuneCountInString(trimmed) > maxPostTitleLength {
		return "", model.NewValidationError("title", "exceeds max length %d", maxPostTitleLength)
	}

	return trimmed, nil
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return model.NewValidationError("slug", "must match [a-z0-9-]+")
	}

	return nil
}

func validateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > maxExcerptLength {
		return model.NewValidationError("excerpt", "exceeds max length %d", maxExcerptLength)
	}

	return nil
}

func validateCategories(categories []string) error {
	if len(categories) == 0 || len(categories) > maxPostCategories {
		return model.NewValidationError("categories",
			"must have between 1 and %d entries", maxPostCategories)
	}
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			return model.NewValidationError("categories", "contains an empty name")
		}
	}

	return nil
}

func validateTags(tags []string) error {
	if len(tags) > maxPostTags {
		return model.NewValidationError("tags", "exceeds max count %d", maxPostTags)
	}

	return nil
}

func validateFeaturedImage(image string) error {
	if image != "" && !imageURLPattern.MatchString(image) {
		return model.NewValidationError("featured_image", "must be an image url")
	}

	return nil
}

func validatePostStatus(status model.PostStatus) error {
	switch status {
	case model.PostStatusDraft, model.PostStatusPublished, model.PostStatusArchived:
		return nil
	default:
		return model.NewValidationError("status", "unknown status %q", status)
	}
}

func validateSEO(seo *model.SEOData) error {
	if utf8.RuneCountInString(seo.MetaTitle) > maxMetaTitleLength {
		return model.NewValidationError("seo.meta_title", "exceeds max length %d", maxMetaTitleLength)
	}
	if utf8.RuneCountInString(seo.MetaDescription) > maxMetaDescriptionLength {
		return model.NewValidationError("seo.meta_description",
			"exceeds max length %d", maxMetaDescriptionLength)
	}
	if len(seo.Keywords) > maxSEOKeywords {
		return model.NewValidationError("seo.keywords", "exceeds max count %d", maxSEOKeywords)
	}
	if seo.CanonicalURL != "" {
		if _, err := url.ParseRequestURI(seo.CanonicalURL); err != nil {
			return model.NewValidationError("seo.canonical_url", "malformed url")
		}
	}

	return nil
}

func validateCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", model.NewValidationError("content", "is required")
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return "", model.NewValidationError("content", "exceeds max length %d", maxCommentLength)
	}

	return trimmed, nil
}

func validateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", model.NewValidationError("name", "is required")
	}

	return trimmed, nil
}
