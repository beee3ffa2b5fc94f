package chatwoot

import "encoding/json"

// Team is a Chatwoot team as returned by the team listing endpoint.
type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// teamListResponse covers the response shapes different Chatwoot versions
// use for GET /teams: a bare array, {"payload": [...]} or {"data": [...]}.
type teamListResponse struct {
	Payload []Team `json:"payload"`
	Data    []Team `json:"data"`
}

// MetaUpdate carries the optional fields of a conversation metadata update.
// Zero-valued fields are omitted from the request.
type MetaUpdate struct {
	CustomAttributes map[string]interface{}
	TeamID           int
	ClearAssignment  bool
}

type sendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

type setLabelsRequest struct {
	Labels []string `json:"labels"`
}

type assignTeamRequest struct {
	TeamID int `json:"team_id"`
}

type metaUpdateRequest struct {
	CustomAttributes map[string]interface{} `json:"custom_attributes,omitempty"`
	TeamID           int                    `json:"team_id,omitempty"`
	// AssigneeID must serialize as an explicit null to clear the assignment.
	AssigneeID json.RawMessage `json:"assignee_id,omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}
