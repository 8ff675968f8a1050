package store

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-community/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildCountMatchingQuery(t *testing.T) {
	query, args, err := buildCountMatchingQuery(dollar, "users", "email", "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE email = $1", query)
	assert.Equal(t, []any{"a@b.com"}, args)

	query, _, err = buildCountMatchingQuery(question, "users", "email", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE email = ?", query)
}

func Test_buildFindStatusQuery(t *testing.T) {
	query, args, err := buildFindStatusQuery(dollar, "members", "username", "bob")
	require.NoError(t, err)

	assert.Equal(t, "SELECT active, isbanned FROM members WHERE username = $1 LIMIT 1", query)
	assert.Equal(t, []any{"bob"}, args)
}

func Test_buildQueries_RejectIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		field      string
	}{
		{name: "injection in collection", collection: "users; DROP TABLE users", field: "email"},
		{name: "quoted field", collection: "users", field: `"email"`},
		{name: "leading digit", collection: "1users", field: "email"},
		{name: "empty field", collection: "users", field: ""},
		{name: "dotted", collection: "public.users", field: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildCountMatchingQuery(dollar, tt.collection, tt.field, "x")
			assert.ErrorIs(t, err, ErrInvalidIdentifier)

			_, _, err = buildFindStatusQuery(dollar, tt.collection, tt.field, "x")
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func Test_buildInsertUserQuery(t *testing.T) {
	user := models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Timezone:     "UTC",
		Active:       true,
		CreatedAt:    time.Now(),
	}

	query, args, err := buildInsertUserQuery(dollar, user)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO users")
	assert.Contains(t, query, "username")
	assert.Contains(t, query, "$6")
	assert.Contains(t, query, "RETURNING user_id")
	assert.Equal(t, []any{"alice", "alice@example.com", "hash", "UTC", true, user.CreatedAt}, args)
}

func Test_buildFindUserByUsernameQuery(t *testing.T) {
	query, args, err := buildFindUserByUsernameQuery(question, "alice")
	require.NoError(t, err)

	assert.Equal(t, "SELECT user_id, username, email, password, timezone, active, isbanned, created_at FROM users WHERE username = ?", query)
	assert.Equal(t, []any{"alice"}, args)
}
