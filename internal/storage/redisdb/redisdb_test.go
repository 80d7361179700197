package redisdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestStore(t *testing.T) *Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
		OnlineTTL:    90 * time.Second,
	}

	store, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return store
}

func TestSetAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	err := store.Set(ctx, "user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := store.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	var out testStruct
	found, err := store.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidatePattern(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "datasets:1", testStruct{Name: "a"}, time.Minute))
	require.NoError(t, store.Set(ctx, "datasets:2", testStruct{Name: "b"}, time.Minute))
	require.NoError(t, store.Set(ctx, "user_votes:1", testStruct{Name: "c"}, time.Minute))

	removed, err := store.InvalidatePattern(ctx, "datasets:*")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var out testStruct
	found, err := store.Get(ctx, "datasets:1", &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = store.Get(ctx, "user_votes:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestNotificationsNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n := models.Notification{
			Type:       models.NotificationNewFollower,
			FollowerID: fmt.Sprintf("follower-%d", i),
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.AddNotification(ctx, "user-1", n))
	}

	list, err := store.Notifications(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "follower-2", list[0].FollowerID)
	assert.Equal(t, "follower-0", list[2].FollowerID)
}

func TestNotificationsCap(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < maxNotifications+20; i++ {
		n := models.Notification{
			Type:       models.NotificationNewFollower,
			FollowerID: fmt.Sprintf("follower-%d", i),
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.AddNotification(ctx, "user-1", n))
	}

	list, err := store.Notifications(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, maxNotifications)
	// Старейшие записи вытеснены, свежайшая в начале.
	assert.Equal(t, fmt.Sprintf("follower-%d", maxNotifications+19), list[0].FollowerID)
	assert.Equal(t, "follower-20", list[maxNotifications-1].FollowerID)
}

func TestMarkNotificationRead(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n := models.Notification{
			Type:       models.NotificationNewFollower,
			FollowerID: fmt.Sprintf("follower-%d", i),
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.AddNotification(ctx, "user-1", n))
	}

	require.NoError(t, store.MarkNotificationRead(ctx, "user-1", 1))

	list, err := store.Notifications(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].Read)
	assert.True(t, list[1].Read)
}

func TestMarkNotificationReadOutOfRange(t *testing.T) {
	store := setupTestStore(t)

	err := store.MarkNotificationRead(context.Background(), "user-1", 0)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestConversationIDSymmetric(t *testing.T) {
	assert.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	assert.Equal(t, "alice_bob", ConversationID("bob", "alice"))
}

func TestConversationChronologicalOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		msg := models.Message{
			ID:         fmt.Sprintf("msg-%d", i),
			SenderID:   "alice",
			ReceiverID: "bob",
			Message:    fmt.Sprintf("hello %d", i),
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.PushMessage(ctx, msg))
	}

	msgs, err := store.Conversation(ctx, "bob", "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg-0", msgs[0].ID)
	assert.Equal(t, "msg-2", msgs[2].ID)
}

func TestConversationCap(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < maxConversationMessages+10; i++ {
		msg := models.Message{
			ID:         fmt.Sprintf("msg-%d", i),
			SenderID:   "alice",
			ReceiverID: "bob",
			Message:    "x",
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.PushMessage(ctx, msg))
	}

	msgs, err := store.Conversation(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, msgs, maxConversationMessages)
	assert.Equal(t, "msg-10", msgs[0].ID)
	assert.Equal(t, fmt.Sprintf("msg-%d", maxConversationMessages+9),
		msgs[maxConversationMessages-1].ID)
}

func TestConversationPartnersIndex(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	msg := models.Message{
		ID:         "msg-1",
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    "hi",
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, store.PushMessage(ctx, msg))

	partners, err := store.ConversationPartners(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, partners)

	partners, err = store.ConversationPartners(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, partners)
}

func TestMarkMessagesReadAndUnreadCount(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		msg := models.Message{
			ID:         fmt.Sprintf("msg-%d", i),
			SenderID:   "alice",
			ReceiverID: "bob",
			Message:    "hi",
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.PushMessage(ctx, msg))
	}
	reply := models.Message{
		ID:         "msg-reply",
		SenderID:   "bob",
		ReceiverID: "alice",
		Message:    "hey",
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, store.PushMessage(ctx, reply))

	count, err := store.UnreadCount(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, store.MarkMessagesRead(ctx, "bob", "alice"))

	count, err = store.UnreadCount(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Ответ от bob для alice не затронут.
	count, err = store.UnreadCount(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLastMessage(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	last, err := store.LastMessage(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Nil(t, last)

	for i := 0; i < 2; i++ {
		msg := models.Message{
			ID:         fmt.Sprintf("msg-%d", i),
			SenderID:   "alice",
			ReceiverID: "bob",
			Message:    "hi",
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, store.PushMessage(ctx, msg))
	}

	last, err = store.LastMessage(ctx, "bob", "alice")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "msg-1", last.ID)
}

func TestFollowersSet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFollower(ctx, "bob", "alice"))
	require.NoError(t, store.AddFollower(ctx, "bob", "carol"))

	ok, err := store.IsFollower(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := store.FollowersCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, store.RemoveFollower(ctx, "bob", "alice"))

	ok, err = store.IsFollower(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVotes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, found, err := store.Vote(ctx, "user-1", "ds-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetVote(ctx, "user-1", "ds-1", 5))
	require.NoError(t, store.SetVote(ctx, "user-1", "ds-2", 3))
	require.NoError(t, store.SetVote(ctx, "user-1", "ds-1", 4))

	vote, found, err := store.Vote(ctx, "user-1", "ds-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 4, vote)

	all, err := store.Votes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ds-1": 4, "ds-2": 3}, all)
}

func TestPresence(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	online, err := store.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, online)

	require.NoError(t, store.Heartbeat(ctx, "alice"))
	require.NoError(t, store.Heartbeat(ctx, "bob"))

	online, err = store.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, online)

	users, err := store.OnlineUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)

	require.NoError(t, store.SetOffline(ctx, "bob"))

	users, err = store.OnlineUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestPresenceExpiresStaleHeartbeats(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Heartbeat старше TTL считается оффлайном и удаляется при выборке.
	stale := redis.Z{
		Score:  float64(time.Now().Add(-5 * time.Minute).Unix()),
		Member: "ghost",
	}
	require.NoError(t, store.Db.ZAdd(ctx, onlineUsersKey, stale).Err())
	require.NoError(t, store.Heartbeat(ctx, "alice"))

	online, err := store.IsOnline(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, online)

	users, err := store.OnlineUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestStats(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "datasets:1", testStruct{}, time.Minute))
	require.NoError(t, store.Set(ctx, "datasets:2", testStruct{}, time.Minute))
	require.NoError(t, store.SetVote(ctx, "user-1", "ds-1", 5))
	require.NoError(t, store.Heartbeat(ctx, "alice"))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["datasets:*"])
	assert.Equal(t, 1, stats["user_votes:*"])
	assert.Equal(t, 1, stats["online_users"])
	assert.Equal(t, 0, stats["notifications:*"])
}
