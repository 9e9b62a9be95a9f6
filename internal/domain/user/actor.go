package user

import "github.com/google/uuid"

// Actor is the pre-resolved caller identity consumed by the reservation
// service. Authentication happens at the edge; the core only distinguishes
// a privileged actor (staff or admin) from a reader acting on their own
// reservations.
type Actor struct {
	userID   uuid.UUID
	role     Role
	readerID *uuid.UUID
}

func NewPrivilegedActor(userID uuid.UUID, role Role) Actor {
	return Actor{userID: userID, role: role}
}

func NewReaderActor(userID, readerID uuid.UUID) Actor {
	id := readerID
	return Actor{userID: userID, role: RoleReader, readerID: &id}
}

func (a Actor) UserID() uuid.UUID { return a.userID }
func (a Actor) Role() Role        { return a.role }

func (a Actor) IsPrivileged() bool {
	return a.role.IsPrivileged()
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// ReaderID returns the reader identity for reader actors and uuid.Nil
// otherwise.
func (a Actor) ReaderID() uuid.UUID {
	if a.readerID == nil {
		return uuid.Nil
	}
	return *a.readerID
}

// OwnsReader reports whether this actor is the reader identified by id.
// Privileged actors do not own readers; ownership checks are only
// meaningful for the self-service path.
func (a Actor) OwnsReader(id uuid.UUID) bool {
	return a.readerID != nil && *a.readerID == id
}
