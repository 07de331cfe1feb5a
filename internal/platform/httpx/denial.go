package httpx

import "net/http"

// DenialDetails is the diagnostic payload attached to a 403. For a
// capability denial it names the missing key, the actor's role and what
// the actor can already do in that module; an ownership denial carries
// only the reason.
type DenialDetails struct {
	Reason             string   `json:"reason,omitempty"`
	RequiredPermission string   `json:"requiredPermission,omitempty"`
	UserRole           string   `json:"userRole,omitempty"`
	AvailableActions   []string `json:"availableActions,omitempty"`
	Suggestion         string   `json:"suggestion,omitempty"`
}

type denialResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Details DenialDetails `json:"details"`
}

// Deny writes the uniform 403 envelope used by both capability and
// ownership denials. Messages are safe to show to the caller.
func Deny(w http.ResponseWriter, message string, details DenialDetails) {
	JSON(w, http.StatusForbidden, denialResponse{
		Success: false,
		Message: message,
		Details: details,
	})
}
