package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

// authorityPrefix marks group or role claims that map to authorities.
const authorityPrefix = "ROLE_"

// defaultLangKey is used when the provider sends no locale.
const defaultLangKey = "en"

type accountService struct {
	users  store.UserRepository
	logger *logger.Logger
}

func NewAccountService(users store.UserRepository, logger *logger.Logger) AccountService {
	return &accountService{
		users:  users,
		logger: logger,
	}
}

// UpsertFromClaims builds a [models.User] from standard OIDC claims and
// stores it.
//
// Authorities are the "groups" and "roles" claim values starting with
// "ROLE_"; a user without any is granted [models.AuthorityUser].
func (s *accountService) UpsertFromClaims(ctx context.Context, claims jwt.MapClaims) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := UserFromClaims(claims)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpsertFromClaims").Msg("cannot derive user from claims")
		return models.User{}, err
	}

	saved, err := s.users.UpsertUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpsertFromClaims").Str("login", user.Login).Msg("error saving user")
		return models.User{}, err
	}

	log.Debug().Str("login", saved.Login).Strs("authorities", saved.Authorities).Msg("user synchronized from identity provider")
	return saved, nil
}

// UserFromClaims maps ID token claims to a user without persisting it.
func UserFromClaims(claims jwt.MapClaims) (models.User, error) {
	login := utils.ClaimString(claims, "preferred_username")
	if login == "" {
		login = utils.ClaimString(claims, "sub")
	}
	if login == "" {
		return models.User{}, fmt.Errorf("%w: no preferred_username or sub", ErrInvalidClaims)
	}

	user := models.User{
		Login:     strings.ToLower(login),
		FirstName: utils.ClaimString(claims, "given_name"),
		LastName:  utils.ClaimString(claims, "family_name"),
		Email:     strings.ToLower(utils.ClaimString(claims, "email")),
		ImageURL:  utils.ClaimString(claims, "picture"),
		LangKey:   langKey(utils.ClaimString(claims, "locale")),
		Activated: true,
	}
	grantAuthorities(&user, claims)
	return user, nil
}

// grantAuthorities adds each "ROLE_" value of the groups and roles claims
// once, in claim order.
func grantAuthorities(user *models.User, claims jwt.MapClaims) {
	for _, name := range []string{"groups", "roles"} {
		for _, v := range utils.ClaimStrings(claims, name) {
			if strings.HasPrefix(v, authorityPrefix) && !user.HasAuthority(v) {
				user.Authorities = append(user.Authorities, v)
			}
		}
	}
	if len(user.Authorities) == 0 {
		user.Authorities = []string{models.AuthorityUser}
	}
}

// langKey reduces a locale such as "en-US" or "fr_FR" to its language.
func langKey(locale string) string {
	if locale == "" {
		return defaultLangKey
	}
	lang, _, _ := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-")
	return strings.ToLower(lang)
}
