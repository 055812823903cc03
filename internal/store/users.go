package store

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labelcheck/models"
)

// CreateUser registers a new account. An empty roleName defaults to
// "operator".
func CreateUser(db *gorm.DB, username, password, roleName string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if len(password) < 6 { // basic password policy
		return fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return fmt.Errorf("user already exists")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if roleName == "" {
		roleName = "operator"
	}
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		role = models.Role{Name: roleName}
		if err2 := db.Where("name = ?", roleName).FirstOrCreate(&role).Error; err2 != nil {
			return fmt.Errorf("failed to ensure role %q: %v", roleName, err2)
		}
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hashed, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return fmt.Errorf("user already exists")
		}
		return err
	}
	return nil
}

// Authenticate checks a username/password pair and returns the account.
func Authenticate(db *gorm.DB, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// RoleName resolves a user's role name; empty when none is assigned.
func RoleName(db *gorm.DB, u models.User) string {
	if u.RoleID == nil {
		return ""
	}
	var r models.Role
	if err := db.First(&r, *u.RoleID).Error; err != nil {
		return ""
	}
	return r.Name
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
