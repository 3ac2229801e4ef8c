package service

import (
	"context"
	"strings"
	"testing"

	"telanix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name         string
		input        RegisterInput
		existing     *models.User
		expectedCode string
	}{
		{
			name:  "Success",
			input: RegisterInput{Email: "new@example.com", Password: "secret1", Name: "New User"},
		},
		{
			name:         "Invalid email",
			input:        RegisterInput{Email: "not-an-email", Password: "secret1", Name: "User"},
			expectedCode: models.CodeValidation,
		},
		{
			name:         "Short password",
			input:        RegisterInput{Email: "a@b.com", Password: "abc", Name: "User"},
			expectedCode: models.CodeValidation,
		},
		{
			name:         "Missing name",
			input:        RegisterInput{Email: "a@b.com", Password: "secret1", Name: ""},
			expectedCode: models.CodeValidation,
		},
		{
			name:         "Duplicate email",
			input:        RegisterInput{Email: "taken@example.com", Password: "secret1", Name: "User"},
			existing:     &models.User{ID: 9, Email: "taken@example.com"},
			expectedCode: models.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &userRepoStub{
				getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
					return tt.existing, nil
				},
				createFn: func(_ context.Context, user *models.User) error {
					user.ID = 1
					return nil
				},
			}
			svc := NewAccountService(userRepo, &statsRepoStub{})

			user, err := svc.Register(context.Background(), tt.input)
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, models.AsAppError(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.True(t, user.IsActive)
			// Stored password must be a bcrypt hash, never the plaintext.
			assert.NotEqual(t, tt.input.Password, user.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tt.input.Password)))
			assert.True(t, strings.HasPrefix(user.AvatarURL, "https://ui-avatars.com/api/"))
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	hashed := hashPassword(t, "correct-horse")

	tests := []struct {
		name         string
		input        LoginInput
		user         *models.User
		expectedCode string
	}{
		{
			name:  "Success",
			input: LoginInput{Email: "u@example.com", Password: "correct-horse"},
			user:  &models.User{ID: 1, Email: "u@example.com", Password: hashed, IsActive: true},
		},
		{
			name:         "Unknown email",
			input:        LoginInput{Email: "ghost@example.com", Password: "whatever"},
			user:         nil,
			expectedCode: models.CodeInvalidCredentials,
		},
		{
			name:         "Wrong password",
			input:        LoginInput{Email: "u@example.com", Password: "wrong"},
			user:         &models.User{ID: 1, Email: "u@example.com", Password: hashed, IsActive: true},
			expectedCode: models.CodeInvalidCredentials,
		},
		{
			name:         "Deactivated account",
			input:        LoginInput{Email: "u@example.com", Password: "correct-horse"},
			user:         &models.User{ID: 1, Email: "u@example.com", Password: hashed, IsActive: false},
			expectedCode: models.CodeInvalidCredentials,
		},
		{
			name:         "Missing fields",
			input:        LoginInput{},
			expectedCode: models.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loginTouched := false
			userRepo := &userRepoStub{
				getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
					return tt.user, nil
				},
			}
			statsRepo := &statsRepoStub{
				updateLastLoginFn: func(_ context.Context, _ uint) error {
					loginTouched = true
					return nil
				},
			}
			svc := NewAccountService(userRepo, statsRepo)

			user, err := svc.Authenticate(context.Background(), tt.input)
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, models.AsAppError(err).Code)
				assert.False(t, loginTouched)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, user.ID)
			assert.True(t, loginTouched)
		})
	}
}

func TestAccountService_AuthenticateFailuresIndistinguishable(t *testing.T) {
	hashed := hashPassword(t, "right")
	userRepo := &userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "known@example.com" {
				return &models.User{ID: 1, Email: email, Password: hashed, IsActive: true}, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(userRepo, &statsRepoStub{})

	_, errUnknown := svc.Authenticate(context.Background(), LoginInput{Email: "nope@example.com", Password: "right"})
	_, errWrongPw := svc.Authenticate(context.Background(), LoginInput{Email: "known@example.com", Password: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, models.AsAppError(errUnknown).Code, models.AsAppError(errWrongPw).Code)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	stored := &models.User{ID: 1, Email: "u@example.com", Name: "Old Name", Bio: "old bio", AvatarURL: "old.png"}
	var saved *models.User
	userRepo := &userRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.User, error) {
			copy := *stored
			return &copy, nil
		},
		updateFn: func(_ context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	svc := NewAccountService(userRepo, &statsRepoStub{})

	newName := "New Name"
	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: &newName})
	require.NoError(t, err)

	// Only the provided field changes.
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "old bio", user.Bio)
	assert.Equal(t, "old.png", user.AvatarURL)
	require.NotNil(t, saved)
	assert.Equal(t, "New Name", saved.Name)
}

func TestAccountService_UpdateProfileValidation(t *testing.T) {
	userRepo := &userRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.User, error) {
			return &models.User{ID: 1}, nil
		},
	}
	svc := NewAccountService(userRepo, &statsRepoStub{})

	empty := ""
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: &empty})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.AsAppError(err).Code)

	longBio := strings.Repeat("x", 501)
	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &longBio})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.AsAppError(err).Code)
}
