package enum

type RoomType string

const (
	RoomTypeGroup    RoomType = "GROUP"
	RoomTypeChannel  RoomType = "CHANNEL"
	RoomTypeOfficial RoomType = "OFFICIAL"
)
