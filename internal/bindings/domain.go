package bindings

import "time"

// Binding associates an actor with a role. Bindings are deactivated
// rather than deleted, so the history of who held what survives.
type Binding struct {
	ActorID  int64     `json:"actorId"`
	RoleID   int64     `json:"roleId"`
	RoleName string    `json:"roleName"`
	IsActive bool      `json:"isActive"`
	BoundBy  int64     `json:"boundBy"`
	BoundAt  time.Time `json:"boundAt"`
}
