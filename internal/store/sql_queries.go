package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-gateway/models"
)

const (
	usersTable           = "users"
	authoritiesTable     = "authorities"
	userAuthoritiesTable = "user_authorities"
	sessionsTable        = "sessions"
)

var userColumns = []string{
	"id", "login", "first_name", "last_name", "email", "image_url",
	"lang_key", "activated", "created_at", "updated_at",
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Login, user.FirstName, user.LastName, user.Email, user.ImageURL,
			user.LangKey, user.Activated, user.CreatedAt, user.UpdatedAt).
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(usersTable).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("image_url", user.ImageURL).
		Set("lang_key", user.LangKey).
		Set("activated", user.Activated).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

func buildFindUserAuthoritiesQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select("authority_name").
		From(userAuthoritiesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("authority_name").
		ToSql()
}

func buildDeleteUserAuthoritiesQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(userAuthoritiesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildInsertUserAuthoritiesQuery(b sq.StatementBuilderType, userID string, authorities []string) (string, []any, error) {
	q := b.Insert(userAuthoritiesTable).Columns("user_id", "authority_name")
	for _, a := range authorities {
		q = q.Values(userID, a)
	}
	return q.ToSql()
}

// buildFindAuthoritiesQuery selects which of names already exist.
func buildFindAuthoritiesQuery(b sq.StatementBuilderType, names []string) (string, []any, error) {
	return b.Select("name").
		From(authoritiesTable).
		Where(sq.Eq{"name": names}).
		ToSql()
}

func buildInsertAuthoritiesQuery(b sq.StatementBuilderType, names []string) (string, []any, error) {
	q := b.Insert(authoritiesTable).Columns("name")
	for _, n := range names {
		q = q.Values(n)
	}
	return q.ToSql()
}

func buildFindSessionQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select("data", "created_at", "expires_at").
		From(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildUpdateSessionQuery(b sq.StatementBuilderType, id string, data string, expiresAt time.Time) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("data", data).
		Set("expires_at", expiresAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertSessionQuery(b sq.StatementBuilderType, id string, data string, createdAt, expiresAt time.Time) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns("id", "data", "created_at", "expires_at").
		Values(id, data, createdAt, expiresAt).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
}
