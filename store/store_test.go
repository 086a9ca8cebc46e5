package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/utils"
	"github.com/Luismorlan/newsdash/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	clock := &testClock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return New(db, WithClock(clock.Now), WithBcryptCost(bcrypt.MinCost)), clock
}

func createTestUser(t *testing.T, s *Store, username string) uint {
	t.Helper()
	id, err := s.CreateUser(username, "password")
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

func TestCreateUser(t *testing.T) {
	s, clock := newTestStore(t)

	id, err := s.CreateUser("alice", "pw")
	require.NoError(t, err)
	require.NotZero(t, id)

	user, err := s.GetUser("alice")
	require.NoError(t, err)
	require.Equal(t, id, user.Id)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)
	require.True(t, clock.now.Equal(user.CreatedAt))

	byId, err := s.GetUserById(id)
	require.NoError(t, err)
	require.Equal(t, "alice", byId.Username)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.CreateUser("alice", "pw")
	require.NoError(t, err)

	second, err := s.CreateUser("alice", "pw2")
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Zero(t, second)

	// the first user keeps its password
	ok, err := s.VerifyUser("alice", "pw")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.VerifyUser("alice", "pw2")
	require.NoError(t, err)
	require.False(t, ok)

	user, err := s.GetUser("alice")
	require.NoError(t, err)
	require.Equal(t, id, user.Id)
}

func TestCreateUser_Invalid(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.CreateUser("", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.CreateUser("bob", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordIsHashed(t *testing.T) {
	s, _ := newTestStore(t)
	createTestUser(t, s, "alice")

	var user model.User
	require.NoError(t, s.DB().Where("username = ?", "alice").First(&user).Error)
	require.NotEqual(t, "password", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password")))
}

func TestVerifyUser(t *testing.T) {
	s, _ := newTestStore(t)
	createTestUser(t, s, "alice")

	ok, err := s.VerifyUser("alice", "password")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyUser("alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.VerifyUser("nobody", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetUser_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetUser("nobody")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetUserById(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserPreferences(t *testing.T) {
	s, clock := newTestStore(t)
	id := createTestUser(t, s, "alice")

	_, err := s.GetUserPreferences(id)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpdateUserPreferences(id, model.UserPreferences{
		Categories: model.StringSet{"technology", "business", "technology"},
		Countries:  model.StringSet{"us"},
		Language:   "en",
		Sentiment:  "positive",
	}))
	prefs, err := s.GetUserPreferences(id)
	require.NoError(t, err)
	require.Equal(t, model.StringSet{"technology", "business"}, prefs.Categories)
	require.Equal(t, model.StringSet{"us"}, prefs.Countries)
	require.Equal(t, "en", prefs.Language)
	require.Equal(t, "positive", prefs.Sentiment)

	// second update replaces the row
	clock.Advance(time.Hour)
	require.NoError(t, s.UpdateUserPreferences(id, model.UserPreferences{
		Categories: model.StringSet{"sports"},
		Language:   "fr",
	}))
	prefs, err = s.GetUserPreferences(id)
	require.NoError(t, err)
	require.Equal(t, model.StringSet{"sports"}, prefs.Categories)
	require.Empty(t, prefs.Countries)
	require.Equal(t, "fr", prefs.Language)
	require.True(t, clock.now.Equal(prefs.UpdatedAt))

	var count int64
	s.DB().Model(&model.UserPreferences{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestUserPreferences_UnknownUser(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.UpdateUserPreferences(42, model.UserPreferences{Language: "en"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReadingHistory(t *testing.T) {
	s, clock := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	for _, url := range []string{"https://a.com/1", "https://a.com/2", "https://a.com/3"} {
		require.NoError(t, s.AddReadingHistory(alice, model.ReadingHistory{ArticleUrl: url, Title: url, Category: "tech"}))
		clock.Advance(time.Minute)
	}
	require.NoError(t, s.AddReadingHistory(bob, model.ReadingHistory{ArticleUrl: "https://b.com"}))

	history, err := s.GetReadingHistory(alice, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, "https://a.com/3", history[0].ArticleUrl)
	require.Equal(t, "https://a.com/1", history[2].ArticleUrl)
	for i := 1; i < len(history); i++ {
		require.False(t, history[i].ReadTimestamp.After(history[i-1].ReadTimestamp))
	}

	history, err = s.GetReadingHistory(alice, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)

	history, err = s.GetReadingHistory(999, 10)
	require.NoError(t, err)
	require.NotNil(t, history)
	require.Empty(t, history)
}

func TestReadingHistory_Invalid(t *testing.T) {
	s, _ := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	require.ErrorIs(t, s.AddReadingHistory(alice, model.ReadingHistory{}), ErrMissingUrl)
	require.ErrorIs(t, s.AddReadingHistory(999, model.ReadingHistory{ArticleUrl: "https://a.com"}), ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	s, _ := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	require.NoError(t, s.AddReadingHistory(alice, model.ReadingHistory{ArticleUrl: "https://a.com"}))
	require.NoError(t, s.UpdateUserPreferences(alice, model.UserPreferences{Language: "en"}))
	require.NoError(t, s.AddArticleFeedback(alice, "https://a.com", nil, nil))

	require.NoError(t, s.DeleteUser(alice))
	require.ErrorIs(t, s.DeleteUser(alice), ErrNotFound)

	history, err := s.GetReadingHistory(alice, 0)
	require.NoError(t, err)
	require.Empty(t, history)
	_, err = s.GetUserPreferences(alice)
	require.ErrorIs(t, err, ErrNotFound)
	feedback, err := s.GetUserFeedback(alice)
	require.NoError(t, err)
	require.Empty(t, feedback)
}
