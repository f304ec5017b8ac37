package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat-app/entity"
	"campus-chat-app/enum"
)

func TestCreateWithMembersAndLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	rooms := NewChatRoomRepository(db)
	members := NewGroupMemberRepository(db)

	aditya := seedUser(t, users, "Aditya", "aditya@gmail.com")
	megha := seedUser(t, users, "Megha", "megha@gmail.com")

	master := &entity.ChatRoom{Name: "Default College", Type: enum.RoomTypeOfficial, IsActive: true}
	require.NoError(t, rooms.Save(ctx, master))

	study := &entity.ChatRoom{Name: "Study", Type: enum.RoomTypeGroup, CreatorID: &aditya.ID, IsActive: true}
	require.NoError(t, rooms.CreateWithMembers(ctx, study, []entity.GroupMember{
		{UserID: aditya.ID, Role: enum.MemberRoleLeader, JoinedAt: epoch},
		{UserID: megha.ID, Role: enum.MemberRoleMember, JoinedAt: epoch.Add(time.Second)},
	}))
	require.NotZero(t, study.ID)

	found, err := rooms.FindByName(ctx, "Default College")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, master.ID, found.ID)

	listed, err := members.FindByRoom(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Aditya", listed[0].User.Username)
	assert.Equal(t, enum.MemberRoleLeader, listed[0].Role)
	assert.Equal(t, "Megha", listed[1].User.Username)

	empty, err := members.FindByRoom(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, empty)

	joined := &entity.GroupMember{ChatRoomID: master.ID, UserID: megha.ID, Role: enum.MemberRoleMember, JoinedAt: epoch.Add(time.Minute)}
	require.NoError(t, members.Save(ctx, joined))

	groups, err := members.FindRoomsByUser(ctx, megha.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, study.ID, groups[0].ID)
	assert.Equal(t, "Study", groups[0].Name)
	assert.Equal(t, master.ID, groups[1].ID)

	membership, err := members.FindByRoomAndUser(ctx, master.ID, megha.ID)
	require.NoError(t, err)
	require.NotNil(t, membership)
	require.NoError(t, members.Delete(ctx, membership))

	membership, err = members.FindByRoomAndUser(ctx, master.ID, megha.ID)
	require.NoError(t, err)
	assert.Nil(t, membership)

	groups, err = members.FindRoomsByUser(ctx, megha.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, study.ID, groups[0].ID)
}

func TestCreateWithMembersRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	rooms := NewChatRoomRepository(db)

	aditya := seedUser(t, users, "Aditya", "aditya@gmail.com")
	require.NoError(t, db.Exec("DROP TABLE t_group_member").Error)

	room := &entity.ChatRoom{Name: "Broken", Type: enum.RoomTypeGroup, CreatorID: &aditya.ID, IsActive: true}
	err := rooms.CreateWithMembers(ctx, room, []entity.GroupMember{
		{UserID: aditya.ID, Role: enum.MemberRoleLeader, JoinedAt: epoch},
	})
	require.Error(t, err)

	found, err := rooms.FindByName(ctx, "Broken")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestChatMessageHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	rooms := NewChatRoomRepository(db)
	messages := NewChatMessageRepository(db)

	aditya := seedUser(t, users, "Aditya", "aditya@gmail.com")
	megha := seedUser(t, users, "Megha", "megha@gmail.com")
	rahul := seedUser(t, users, "Rahul", "rahul@gmail.com")

	room := &entity.ChatRoom{Name: "Study", Type: enum.RoomTypeGroup, IsActive: true}
	require.NoError(t, rooms.Save(ctx, room))

	for i, content := range []string{"one", "two", "three"} {
		require.NoError(t, messages.Save(ctx, &entity.ChatMessage{
			ChatRoomID: &room.ID,
			SenderID:   aditya.ID,
			Content:    content,
			Timestamp:  epoch.Add(time.Duration(i) * time.Second),
			Type:       enum.MessageTypeChat,
		}))
	}

	private := []struct {
		from, to uint
		content  string
	}{
		{aditya.ID, megha.ID, "hi"},
		{megha.ID, aditya.ID, "hello"},
		{aditya.ID, rahul.ID, "elsewhere"},
		{aditya.ID, megha.ID, "bye"},
	}
	for i, m := range private {
		recipient := m.to
		require.NoError(t, messages.Save(ctx, &entity.ChatMessage{
			SenderID:    m.from,
			RecipientID: &recipient,
			Content:     m.content,
			Timestamp:   epoch.Add(time.Minute + time.Duration(i)*time.Second),
			Type:        enum.MessageTypeChat,
		}))
	}

	latest, err := messages.FindByRoom(ctx, room.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "two", latest[0].Content)
	assert.Equal(t, "three", latest[1].Content)
	assert.Equal(t, "Aditya", latest[1].Sender.Username)
	require.NotNil(t, latest[1].ChatRoom)
	assert.Equal(t, "Study", latest[1].ChatRoom.Name)
	assert.False(t, latest[1].IsPrivate())

	conversation, err := messages.FindConversation(ctx, megha.ID, aditya.ID, 10)
	require.NoError(t, err)
	require.Len(t, conversation, 3)
	assert.Equal(t, "hi", conversation[0].Content)
	assert.Equal(t, "hello", conversation[1].Content)
	assert.Equal(t, "bye", conversation[2].Content)
	assert.True(t, conversation[2].IsPrivate())
	require.NotNil(t, conversation[2].Recipient)
	assert.Equal(t, "Megha", conversation[2].Recipient.Username)
	assert.Nil(t, conversation[2].ChatRoom)

	tail, err := messages.FindConversation(ctx, aditya.ID, megha.ID, 1)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "bye", tail[0].Content)
}
