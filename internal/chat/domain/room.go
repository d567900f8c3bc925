package domain

// RoomKind discriminates personal rooms from group rooms so a user id can
// never collide with a group id on the broadcast bus.
type RoomKind string

const (
	// RoomPersonal room implicitly owned by a single user
	RoomPersonal RoomKind = "personal"
	// RoomGroup room shared by a chat group's members
	RoomGroup RoomKind = "group"
)

// Broadcast bus channel prefixes.
const (
	personalChannelPrefix = "chat:user:"
	groupChannelPrefix    = "chat:group:"

	// PresenceChannel carries userOnline / userOffline events to every
	// authenticated session.
	PresenceChannel = "chat:presence"
)

// Room a typed room identifier.
type Room struct {
	Kind RoomKind
	ID   string
}

// PersonalRoom the room delivering direct messages and status updates to one
// user. Every authenticated session joins its own personal room.
func PersonalRoom(userID string) Room {
	return Room{Kind: RoomPersonal, ID: userID}
}

// GroupRoom the room shared by a group's members.
func GroupRoom(groupID string) Room {
	return Room{Kind: RoomGroup, ID: groupID}
}

// RoomFor resolves a message destination to the room it is dispatched on:
// direct messages land in the recipient's personal room, group messages in
// the group's room.
func RoomFor(d Destination) Room {
	if d.GroupID != "" {
		return GroupRoom(d.GroupID)
	}
	return PersonalRoom(d.ReceiverID)
}

// Channel returns the broadcast bus channel backing the room.
func (r Room) Channel() string {
	if r.Kind == RoomGroup {
		return groupChannelPrefix + r.ID
	}
	return personalChannelPrefix + r.ID
}
