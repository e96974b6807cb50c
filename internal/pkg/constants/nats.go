package constants

// NATS Subjects
const (
	// Trip events
	SubjectTripCreated = "trip.created"
	SubjectTripUpdated = "trip.updated"
	SubjectTripDeleted = "trip.deleted"
	SubjectTripBooked  = "trip.booked"

	// Message events
	SubjectMessageCreated = "message.created"
)
