package domain

// ContentTypeJSON is the only representation the stub currently serves.
const ContentTypeJSON = "application/json"

// APIResponse is the payload returned by the health endpoint.
// Values are handed out by copy; a caller mutating its copy never affects
// what the next caller receives.
type APIResponse struct {
	Code      int32  `json:"code"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

// HealthExample is the canned health record: 200 / "Testing" /
// 2000-01-01T00:00:00Z / "String".
func HealthExample() APIResponse {
	return APIResponse{
		Code:      200,
		Message:   "Testing",
		Timestamp: 946684800,
		Type:      "String",
	}
}
