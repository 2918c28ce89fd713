package ecs

// System is one step of the frame. Systems are plain structs: Query and
// Singleton fields are bound by the Scheduler on registration, any other
// field is state the system keeps between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
