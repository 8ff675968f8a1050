package store

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-community/models"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var userColumns = []string{"user_id", "username", "email", "password", "timezone", "active", "isbanned", "created_at"}

// checkIdentifiers guards names that are interpolated into SQL text.
func checkIdentifiers(names ...string) error {
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}

// buildCountMatchingQuery builds
// SELECT COUNT(*) FROM {collection} WHERE {field} = ?
func buildCountMatchingQuery(builder sq.StatementBuilderType, collection, field, value string) (string, []any, error) {
	if err := checkIdentifiers(collection, field); err != nil {
		return "", nil, err
	}

	query, args, err := builder.
		Select("COUNT(*)").
		From(collection).
		Where(sq.Eq{field: value}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindStatusQuery builds
// SELECT active, isbanned FROM {collection} WHERE {field} = ? LIMIT 1
func buildFindStatusQuery(builder sq.StatementBuilderType, collection, field, value string) (string, []any, error) {
	if err := checkIdentifiers(collection, field); err != nil {
		return "", nil, err
	}

	query, args, err := builder.
		Select("active", "isbanned").
		From(collection).
		Where(sq.Eq{field: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertUserQuery(builder sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := builder.
		Insert(user.TableName()).
		Columns("username", "email", "password", "timezone", "active", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, user.Timezone, user.Active, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserByUsernameQuery(builder sq.StatementBuilderType, username string) (string, []any, error) {
	query, args, err := builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
