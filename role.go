package yasmin

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleError marks a service-reported failure kept inline in the
	// thread, the third role value the wire format allows.
	RoleError Role = "error"
)

// Valid reports whether r is one of the wire roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleError:
		return true
	}
	return false
}
