package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// userRepository is the database/sql implementation of [UserRepository].
// It works against the "users", "authorities" and "user_authorities" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// UpsertUser stores the profile of a user authenticated by the identity
// provider in a single transaction.
//
// A user with the same login keeps its id and creation time; every other
// profile field is overwritten. The authorities of the user are replaced by
// user.Authorities, and authorities unknown to the "authorities" table are
// created on the fly.
//
// Error handling:
//   - unique violation on insert (concurrent first login) → [ErrLoginAlreadyExists].
//   - transaction failures → [ErrBeginningTransaction] / [ErrCommitingTransaction].
func (r *userRepository) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)
	now := r.now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertUser").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	existing, err := r.findUser(ctx, tx, user.Login)
	switch {
	case err == nil:
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = now
		if err = r.exec(ctx, tx, "*userRepository.UpsertUser", func() (string, []any, error) {
			return buildUpdateUserQuery(r.db.builder, user)
		}); err != nil {
			return models.User{}, err
		}
	case errors.Is(err, ErrNoUserWasFound):
		if user.ID == "" {
			user.ID = r.ids.Generate()
		}
		user.CreatedAt = now
		user.UpdatedAt = now
		if err = r.exec(ctx, tx, "*userRepository.UpsertUser", func() (string, []any, error) {
			return buildInsertUserQuery(r.db.builder, user)
		}); err != nil {
			if isUniqueViolation(err) {
				return models.User{}, ErrLoginAlreadyExists
			}
			return models.User{}, err
		}
	default:
		return models.User{}, err
	}

	user.Authorities = normalizeAuthorities(user.Authorities)
	if err = r.replaceAuthorities(ctx, tx, user.ID, user.Authorities); err != nil {
		return models.User{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertUser").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

// FindUserByLogin retrieves the user with the given login and its
// authorities, sorted by name.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	user, err := r.findUser(ctx, r.db, login)
	if err != nil {
		return models.User{}, err
	}

	user.Authorities, err = r.findAuthorities(ctx, r.db, user.ID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) findUser(ctx context.Context, q querier, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByLoginQuery(r.db.builder, login)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Login, &user.FirstName, &user.LastName, &user.Email, &user.ImageURL,
		&user.LangKey, &user.Activated, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) findAuthorities(ctx context.Context, q querier, userID string) ([]string, error) {
	query, args, err := buildFindUserAuthoritiesQuery(r.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryStrings(ctx, q, query, args)
}

func (r *userRepository) replaceAuthorities(ctx context.Context, q querier, userID string, authorities []string) error {
	if len(authorities) > 0 {
		query, args, err := buildFindAuthoritiesQuery(r.db.builder, authorities)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		known, err := queryStrings(ctx, q, query, args)
		if err != nil {
			return err
		}

		var missing []string
		for _, a := range authorities {
			if !slices.Contains(known, a) {
				missing = append(missing, a)
			}
		}
		if len(missing) > 0 {
			if err = r.exec(ctx, q, "*userRepository.replaceAuthorities", func() (string, []any, error) {
				return buildInsertAuthoritiesQuery(r.db.builder, missing)
			}); err != nil {
				return err
			}
		}
	}

	if err := r.exec(ctx, q, "*userRepository.replaceAuthorities", func() (string, []any, error) {
		return buildDeleteUserAuthoritiesQuery(r.db.builder, userID)
	}); err != nil {
		return err
	}

	if len(authorities) == 0 {
		return nil
	}
	return r.exec(ctx, q, "*userRepository.replaceAuthorities", func() (string, []any, error) {
		return buildInsertUserAuthoritiesQuery(r.db.builder, userID, authorities)
	})
}

func (r *userRepository) exec(ctx context.Context, q querier, fn string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func queryStrings(ctx context.Context, q querier, query string, args []any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return out, nil
}

// normalizeAuthorities returns the sorted set of non-empty authorities.
func normalizeAuthorities(authorities []string) []string {
	out := make([]string, 0, len(authorities))
	for _, a := range authorities {
		if a != "" {
			out = append(out, a)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
