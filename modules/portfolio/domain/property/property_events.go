package property

type CreatedEvent struct {
	Result *Property
}

type UpdatedEvent struct {
	Result *Property
}

type DeletedEvent struct {
	Result *Property
}

func NewCreatedEvent(result *Property) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewUpdatedEvent(result *Property) *UpdatedEvent {
	return &UpdatedEvent{Result: result}
}

func NewDeletedEvent(result *Property) *DeletedEvent {
	return &DeletedEvent{Result: result}
}
