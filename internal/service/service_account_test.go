package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/mock"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/models"
)

func TestUserFromClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    models.User
		wantErr error
	}{
		{
			name: "full profile",
			claims: jwt.MapClaims{
				"sub":                "b1c2",
				"preferred_username": "John.Doe",
				"given_name":         "John",
				"family_name":        "Doe",
				"email":              "John@Example.com",
				"picture":            "https://img.example/j.png",
				"locale":             "fr_FR",
				"groups":             []any{"ROLE_ADMIN", "developers", "ROLE_USER"},
			},
			want: models.User{
				Login:       "john.doe",
				FirstName:   "John",
				LastName:    "Doe",
				Email:       "john@example.com",
				ImageURL:    "https://img.example/j.png",
				LangKey:     "fr",
				Activated:   true,
				Authorities: []string{"ROLE_ADMIN", "ROLE_USER"},
			},
		},
		{
			name:   "sub fallback and default authority",
			claims: jwt.MapClaims{"sub": "abc-123"},
			want: models.User{
				Login:       "abc-123",
				LangKey:     "en",
				Activated:   true,
				Authorities: []string{models.AuthorityUser},
			},
		},
		{
			name:   "roles claim as single string",
			claims: jwt.MapClaims{"sub": "x", "roles": "ROLE_ADMIN", "locale": "en-US"},
			want: models.User{
				Login:       "x",
				LangKey:     "en",
				Activated:   true,
				Authorities: []string{"ROLE_ADMIN"},
			},
		},
		{
			name: "role in both groups and roles is granted once",
			claims: jwt.MapClaims{
				"sub":    "y",
				"groups": []any{"ROLE_USER", "ROLE_ADMIN"},
				"roles":  []any{"ROLE_ADMIN", "offline_access", "ROLE_AUDITOR"},
			},
			want: models.User{
				Login:       "y",
				LangKey:     "en",
				Activated:   true,
				Authorities: []string{"ROLE_USER", "ROLE_ADMIN", "ROLE_AUDITOR"},
			},
		},
		{
			name:    "no identity",
			claims:  jwt.MapClaims{"email": "a@b.c"},
			wantErr: ErrInvalidClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserFromClaims(tt.claims)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpsertFromClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	users.EXPECT().
		UpsertUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "john", u.Login)
			u.ID = "u-1"
			return u, nil
		})

	svc := NewAccountService(users, logger.Nop())
	user, err := svc.UpsertFromClaims(context.Background(), jwt.MapClaims{"sub": "s", "preferred_username": "john"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestUpsertFromClaims_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAccountService(users, logger.Nop())

	_, err := svc.UpsertFromClaims(context.Background(), jwt.MapClaims{})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	users.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)
	_, err = svc.UpsertFromClaims(context.Background(), jwt.MapClaims{"sub": "john"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}
