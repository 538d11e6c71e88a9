package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// SignUpRequest is the JSON body for the signup endpoint.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// SignInRequest is the JSON body for the signin endpoint.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddNetworkRequest is the JSON body for the create-network endpoint.
type AddNetworkRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// UpdateNetworkRequest is the JSON body for the partial-update endpoint.
// Absent fields are left unchanged.
type UpdateNetworkRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// UserResponse is the JSON representation of an account.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// SessionResponse is the JSON representation of an issued session.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NetworkResponse is the JSON representation of a credential record. Password
// is the decoded plaintext: the codec boundary sits between the service and
// the store, and this API is the trusted presentation surface, mirroring how
// records are held in client state.
type NetworkResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toUserResponse converts a domain User to its JSON representation.
func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toNetworkResponse converts a domain Network to its JSON representation.
func toNetworkResponse(n model.Network) NetworkResponse {
	return NetworkResponse{
		ID:        n.ID,
		Name:      n.Name,
		Password:  n.Password,
		Location:  n.Location,
		Notes:     n.Notes,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
