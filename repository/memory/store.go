// Package memory keeps every record in process memory. It backs
// DB_DRIVER=memory and the package tests; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus-chat-app/entity"
	"campus-chat-app/enum"
)

// Store is the shared state behind the repository views below.
type Store struct {
	mu sync.RWMutex

	seq map[string]uint

	users       map[uint]entity.User
	friendships []entity.Friendship
	requests    map[uint]entity.FriendRequest
	rooms       map[uint]entity.ChatRoom
	members     map[uint]entity.GroupMember
	messages    map[uint]entity.ChatMessage
}

func NewStore() *Store {
	return &Store{
		seq:      map[string]uint{},
		users:    map[uint]entity.User{},
		requests: map[uint]entity.FriendRequest{},
		rooms:    map[uint]entity.ChatRoom{},
		members:  map[uint]entity.GroupMember{},
		messages: map[uint]entity.ChatMessage{},
	}
}

func (s *Store) next(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func stamp(base *entity.BaseEntity, created bool) {
	now := time.Now()
	if created && base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type UserRepository struct{ *Store }

func NewUserRepository(store *Store) *UserRepository { return &UserRepository{store} }

func (r *UserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
	}
	user.ID = r.next("user")
	stamp(&user.BaseEntity, true)
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %d does not exist", user.ID)
	}
	stamp(&user.BaseEntity, false)
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uint) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findBy(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findBy(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepository) findBy(match func(entity.User) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range sortedKeys(r.users) {
		if user := r.users[id]; match(user) {
			return &user, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAllByIDs(ctx context.Context, ids []uint) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	users := []entity.User{}
	for _, id := range sortedKeys(r.users) {
		if wanted[id] {
			users = append(users, r.users[id])
		}
	}
	return users, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]entity.User, 0, len(r.users))
	for _, id := range sortedKeys(r.users) {
		users = append(users, r.users[id])
	}
	return users, nil
}

type FriendshipRepository struct{ *Store }

func NewFriendshipRepository(store *Store) *FriendshipRepository {
	return &FriendshipRepository{store}
}

func (r *FriendshipRepository) Link(ctx context.Context, userID, friendID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.link(userID, friendID)
	r.link(friendID, userID)
	return nil
}

func (r *FriendshipRepository) link(userID, friendID uint) {
	for _, f := range r.friendships {
		if f.UserID == userID && f.FriendID == friendID {
			return
		}
	}
	r.friendships = append(r.friendships, entity.Friendship{
		ID:       r.next("friendship"),
		UserID:   userID,
		FriendID: friendID,
	})
}

func (r *FriendshipRepository) Unlink(ctx context.Context, userID, friendID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.friendships[:0]
	for _, f := range r.friendships {
		if (f.UserID == userID && f.FriendID == friendID) || (f.UserID == friendID && f.FriendID == userID) {
			continue
		}
		kept = append(kept, f)
	}
	r.friendships = kept
	return nil
}

func (r *FriendshipRepository) FindFriends(ctx context.Context, userID uint) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	friends := []entity.User{}
	for _, f := range r.friendships {
		if f.UserID != userID {
			continue
		}
		if friend, ok := r.users[f.FriendID]; ok {
			friends = append(friends, friend)
		}
	}
	return friends, nil
}

type FriendRequestRepository struct{ *Store }

func NewFriendRequestRepository(store *Store) *FriendRequestRepository {
	return &FriendRequestRepository{store}
}

func (r *FriendRequestRepository) Save(ctx context.Context, request *entity.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = r.next("friend_request")
	stamp(&request.BaseEntity, true)
	r.requests[request.ID] = stripParties(*request)
	return nil
}

func (r *FriendRequestRepository) Update(ctx context.Context, request *entity.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return fmt.Errorf("friend request %d does not exist", request.ID)
	}
	stamp(&request.BaseEntity, false)
	r.requests[request.ID] = stripParties(*request)
	return nil
}

func (r *FriendRequestRepository) FindById(ctx context.Context, id uint) (*entity.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	request = r.withParties(request)
	return &request, nil
}

func (r *FriendRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error) {
	return r.filter(func(fr entity.FriendRequest) bool {
		return fr.ReceiverID == receiverID && fr.Status == status
	}), nil
}

func (r *FriendRequestRepository) FindBySenderAndStatus(ctx context.Context, senderID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error) {
	return r.filter(func(fr entity.FriendRequest) bool {
		return fr.SenderID == senderID && fr.Status == status
	}), nil
}

func (r *FriendRequestRepository) filter(match func(entity.FriendRequest) bool) []entity.FriendRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	requests := []entity.FriendRequest{}
	for _, id := range sortedKeys(r.requests) {
		if request := r.requests[id]; match(request) {
			requests = append(requests, r.withParties(request))
		}
	}
	return requests
}

func (r *FriendRequestRepository) withParties(request entity.FriendRequest) entity.FriendRequest {
	request.Sender = r.users[request.SenderID]
	request.Receiver = r.users[request.ReceiverID]
	return request
}

func stripParties(request entity.FriendRequest) entity.FriendRequest {
	request.Sender = entity.User{}
	request.Receiver = entity.User{}
	return request
}

type ChatRoomRepository struct{ *Store }

func NewChatRoomRepository(store *Store) *ChatRoomRepository { return &ChatRoomRepository{store} }

func (r *ChatRoomRepository) Save(ctx context.Context, room *entity.ChatRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveRoom(room)
	return nil
}

func (r *ChatRoomRepository) saveRoom(room *entity.ChatRoom) {
	room.ID = r.next("chat_room")
	stamp(&room.BaseEntity, true)
	stored := *room
	stored.Creator = nil
	stored.Members = nil
	r.rooms[room.ID] = stored
}

func (r *ChatRoomRepository) CreateWithMembers(ctx context.Context, room *entity.ChatRoom, members []entity.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveRoom(room)
	for i := range members {
		members[i].ChatRoomID = room.ID
		saveMember(r.Store, &members[i])
	}
	return nil
}

func (r *ChatRoomRepository) FindById(ctx context.Context, id uint) (*entity.ChatRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (r *ChatRoomRepository) FindByName(ctx context.Context, name string) (*entity.ChatRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range sortedKeys(r.rooms) {
		if room := r.rooms[id]; room.Name == name {
			return &room, nil
		}
	}
	return nil, nil
}

type GroupMemberRepository struct{ *Store }

func NewGroupMemberRepository(store *Store) *GroupMemberRepository {
	return &GroupMemberRepository{store}
}

func saveMember(s *Store, member *entity.GroupMember) {
	member.ID = s.next("group_member")
	stored := *member
	stored.User = entity.User{}
	stored.ChatRoom = entity.ChatRoom{}
	s.members[member.ID] = stored
}

func (r *GroupMemberRepository) Save(ctx context.Context, member *entity.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saveMember(r.Store, member)
	return nil
}

func (r *GroupMemberRepository) Delete(ctx context.Context, member *entity.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, member.ID)
	return nil
}

func (r *GroupMemberRepository) FindByRoomAndUser(ctx context.Context, roomID, userID uint) (*entity.GroupMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range sortedKeys(r.members) {
		if m := r.members[id]; m.ChatRoomID == roomID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *GroupMemberRepository) FindByRoom(ctx context.Context, roomID uint) ([]entity.GroupMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := []entity.GroupMember{}
	for _, m := range r.joinOrder() {
		if m.ChatRoomID == roomID {
			m.User = r.users[m.UserID]
			members = append(members, m)
		}
	}
	return members, nil
}

func (r *GroupMemberRepository) FindRoomsByUser(ctx context.Context, userID uint) ([]entity.ChatRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := []entity.ChatRoom{}
	for _, m := range r.joinOrder() {
		if m.UserID != userID {
			continue
		}
		if room, ok := r.rooms[m.ChatRoomID]; ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (r *GroupMemberRepository) joinOrder() []entity.GroupMember {
	members := make([]entity.GroupMember, 0, len(r.members))
	for _, id := range sortedKeys(r.members) {
		members = append(members, r.members[id])
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members
}

type ChatMessageRepository struct{ *Store }

func NewChatMessageRepository(store *Store) *ChatMessageRepository {
	return &ChatMessageRepository{store}
}

func (r *ChatMessageRepository) Save(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = r.next("chat_message")
	stamp(&message.BaseEntity, true)
	stored := *message
	stored.ChatRoom = nil
	stored.Sender = entity.User{}
	stored.Recipient = nil
	r.messages[message.ID] = stored
	return nil
}

func (r *ChatMessageRepository) FindByRoom(ctx context.Context, roomID uint, limit int) ([]entity.ChatMessage, error) {
	return r.latest(limit, func(m entity.ChatMessage) bool {
		return m.ChatRoomID != nil && *m.ChatRoomID == roomID
	}), nil
}

func (r *ChatMessageRepository) FindConversation(ctx context.Context, userID, otherID uint, limit int) ([]entity.ChatMessage, error) {
	return r.latest(limit, func(m entity.ChatMessage) bool {
		if m.ChatRoomID != nil || m.RecipientID == nil {
			return false
		}
		return (m.SenderID == userID && *m.RecipientID == otherID) ||
			(m.SenderID == otherID && *m.RecipientID == userID)
	}), nil
}

func (r *ChatMessageRepository) latest(limit int, match func(entity.ChatMessage) bool) []entity.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	messages := []entity.ChatMessage{}
	for _, id := range sortedKeys(r.messages) {
		if m := r.messages[id]; match(m) {
			messages = append(messages, r.withRelations(m))
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages
}

func (r *ChatMessageRepository) withRelations(m entity.ChatMessage) entity.ChatMessage {
	m.Sender = r.users[m.SenderID]
	if m.RecipientID != nil {
		if recipient, ok := r.users[*m.RecipientID]; ok {
			m.Recipient = &recipient
		}
	}
	if m.ChatRoomID != nil {
		if room, ok := r.rooms[*m.ChatRoomID]; ok {
			m.ChatRoom = &room
		}
	}
	return m
}
