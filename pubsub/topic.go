package pubsub

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	RoomTopicPrefix    = "/topic/room/"
	PrivateTopicPrefix = "/topic/private/"
)

func RoomTopic(roomID uint) string {
	return RoomTopicPrefix + strconv.FormatUint(uint64(roomID), 10)
}

func PrivateTopic(userID uint) string {
	return PrivateTopicPrefix + strconv.FormatUint(uint64(userID), 10)
}

// ValidTopic accepts only room and private topics with a numeric id.
func ValidTopic(topic string) error {
	for _, prefix := range []string{RoomTopicPrefix, PrivateTopicPrefix} {
		if id, ok := strings.CutPrefix(topic, prefix); ok {
			if _, err := strconv.ParseUint(id, 10, 64); err != nil {
				return fmt.Errorf("invalid topic id %q", id)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown topic %q", topic)
}

// subject maps "/topic/room/4" to "<prefix>.topic.room.4" for NATS.
func subject(prefix, topic string) string {
	return prefix + strings.ReplaceAll(topic, "/", ".")
}

func topicFromSubject(prefix, subj string) string {
	return strings.ReplaceAll(strings.TrimPrefix(subj, prefix), ".", "/")
}
