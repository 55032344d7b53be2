package handlers

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"funews/internal/auth"
	"funews/internal/models"
)

// Validation limits for request fields.
const (
	maxAccountNameLen  = 100
	maxEmailLen        = 150
	maxRoleLen         = 50
	maxCategoryNameLen = 200
	maxDescriptionLen  = 500
	maxTagNameLen      = 100
	maxNoteLen         = 500
	maxTitleLen        = 500
	maxHeadlineLen     = 1000
	maxSourceLen       = 200
	maxStatusLen       = 50
)

// tooLong reports whether s exceeds max characters.
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

func tooLongMsg(field string, max int) string {
	return fmt.Sprintf("%s is too long (max %d characters).", field, max)
}

// optionalTooLong is tooLong for nullable fields.
func optionalTooLong(s *string, max int) bool {
	return s != nil && tooLong(*s, max)
}

// validEmail accepts a bare address such as "a@b.c", without a display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// accountRequest is the body of account create/update and register.
type accountRequest struct {
	Name     *string `json:"accountName"`
	Email    *string `json:"accountEmail"`
	Role     *string `json:"accountRole"`
	Password *string `json:"accountPassword"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validateAccount checks an account body. On create every field is required;
// on update absent or empty fields are left unchanged.
func validateAccount(req accountRequest, create bool) string {
	name, email, role, password := deref(req.Name), deref(req.Email), deref(req.Role), deref(req.Password)
	if create {
		switch {
		case strings.TrimSpace(name) == "":
			return "Account name is required."
		case email == "":
			return "Account email is required."
		case role == "":
			return "Account role is required."
		case password == "":
			return "Account password is required."
		}
	}
	if tooLong(name, maxAccountNameLen) {
		return tooLongMsg("Account name", maxAccountNameLen)
	}
	if tooLong(email, maxEmailLen) {
		return tooLongMsg("Account email", maxEmailLen)
	}
	if email != "" && !validEmail(email) {
		return "Account email is not a valid email address."
	}
	if tooLong(role, maxRoleLen) {
		return tooLongMsg("Account role", maxRoleLen)
	}
	if role != "" && !models.Role(role).Valid() {
		return "Account role must be one of Admin, Staff or Lecturer."
	}
	// bcrypt limits bytes, not characters.
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Sprintf("Account password is too long (max %d bytes).", auth.MaxPasswordBytes)
	}
	return ""
}

// loginRequest is the body of POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateLogin(req loginRequest) string {
	if req.Email == "" || req.Password == "" {
		return "Email and password are required."
	}
	if !validEmail(req.Email) {
		return "Email is not a valid email address."
	}
	return ""
}

// categoryRequest is the body of category create/update.
type categoryRequest struct {
	Name        *string `json:"categoryName"`
	Description *string `json:"categoryDescription"`
	ParentID    *int64  `json:"parentCategoryId"`
	IsActive    *bool   `json:"isActive"`
}

func validateCategory(req categoryRequest, create bool) string {
	name := deref(req.Name)
	if create && strings.TrimSpace(name) == "" {
		return "Category name is required."
	}
	if tooLong(name, maxCategoryNameLen) {
		return tooLongMsg("Category name", maxCategoryNameLen)
	}
	if optionalTooLong(req.Description, maxDescriptionLen) {
		return tooLongMsg("Category description", maxDescriptionLen)
	}
	if req.ParentID != nil && *req.ParentID <= 0 {
		return "Parent category id must be positive."
	}
	return ""
}

// tagRequest is the body of tag create/update.
type tagRequest struct {
	Name *string `json:"tagName"`
	Note *string `json:"note"`
}

func validateTag(req tagRequest, create bool) string {
	name := deref(req.Name)
	if create && strings.TrimSpace(name) == "" {
		return "Tag name is required."
	}
	if tooLong(name, maxTagNameLen) {
		return tooLongMsg("Tag name", maxTagNameLen)
	}
	if optionalTooLong(req.Note, maxNoteLen) {
		return tooLongMsg("Note", maxNoteLen)
	}
	return ""
}

// articleRequest is the body of article create/update. TagIDs stays nil
// when the field is absent, so an explicit [] can clear every tag.
type articleRequest struct {
	Title      *string  `json:"newsTitle"`
	Headline   *string  `json:"headline"`
	Content    *string  `json:"newsContent"`
	Source     *string  `json:"newsSource"`
	Status     *string  `json:"newsStatus"`
	CategoryID *int64   `json:"categoryId"`
	TagIDs     *[]int64 `json:"tagIds"`
}

func validateArticle(req articleRequest, create bool) string {
	title, content, status := deref(req.Title), deref(req.Content), deref(req.Status)
	if create {
		switch {
		case strings.TrimSpace(title) == "":
			return "News title is required."
		case strings.TrimSpace(content) == "":
			return "News content is required."
		case strings.TrimSpace(status) == "":
			return "News status is required."
		case req.CategoryID == nil:
			return "Category id is required."
		}
	}
	if tooLong(title, maxTitleLen) {
		return tooLongMsg("News title", maxTitleLen)
	}
	if optionalTooLong(req.Headline, maxHeadlineLen) {
		return tooLongMsg("Headline", maxHeadlineLen)
	}
	if optionalTooLong(req.Source, maxSourceLen) {
		return tooLongMsg("News source", maxSourceLen)
	}
	if tooLong(status, maxStatusLen) {
		return tooLongMsg("News status", maxStatusLen)
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return "Category id must be positive."
	}
	return ""
}
