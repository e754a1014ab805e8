package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_UpdateProfile(t *testing.T) {
	db := newTestDB(t)
	userRepo, _, _, _, _, _, _, _ := newRepos(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID: alice.ID, Email: "not-an-email",
		})
		assertAppErrorStatus(t, err, 400)
	})

	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: alice.ID, FullName: "Alice Anderson", Email: "alice@new.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Anderson", updated.FullName)
	assert.Equal(t, "alice@new.example.com", updated.Email)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		createTestUser(t, db, "bob")
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID: alice.ID, Email: "bob@example.com",
		})
		assertAppErrorStatus(t, err, 409)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	db := newTestDB(t)
	userRepo, _, _, _, _, _, _, _ := newRepos(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, alice.ID, "WrongPass1", "NewPassword1")
		assertAppErrorStatus(t, err, 401)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, alice.ID, "Password123", "short")
		assertAppErrorStatus(t, err, 400)
	})

	require.NoError(t, svc.ChangePassword(ctx, alice.ID, "Password123", "NewPassword1"))

	stored, err := svc.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.Password), []byte("NewPassword1")))
}

func TestUserService_SetImages(t *testing.T) {
	db := newTestDB(t)
	userRepo, _, _, _, _, _, _, _ := newRepos(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	updated, err := svc.SetImages(ctx, alice.ID,
		"https://media.example.com/avatar.png", "")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/avatar.png", updated.Avatar)
	assert.Empty(t, updated.CoverImage)

	// An empty field leaves the stored value alone.
	updated, err = svc.SetImages(ctx, alice.ID, "",
		"https://media.example.com/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/avatar.png", updated.Avatar)
	assert.Equal(t, "https://media.example.com/cover.png", updated.CoverImage)
}
