package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient pushes review lifecycle events to dashboard subscribers.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; Supabase broadcasts the
	// underlying row changes automatically, so this is a hook for explicit
	// events via the Realtime REST API when that lands in the client.
	return nil
}

func (r *RealtimeClient) PublishMockupEvent(mockupID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("mockup:%s", mockupID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishUserEvent(userID string, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID)
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func StageSubmittedPayload(mockupID uuid.UUID, stageOrder int) map[string]interface{} {
	return map[string]interface{}{
		"mockup_id":   mockupID.String(),
		"status":      "in_review",
		"stage_order": stageOrder,
	}
}

func StageApprovedPayload(mockupID uuid.UUID, stageOrder int) map[string]interface{} {
	return map[string]interface{}{
		"mockup_id":   mockupID.String(),
		"status":      "approved",
		"stage_order": stageOrder,
	}
}

func ChangesRequestedPayload(mockupID uuid.UUID, stageOrder int) map[string]interface{} {
	return map[string]interface{}{
		"mockup_id":   mockupID.String(),
		"status":      "changes_requested",
		"stage_order": stageOrder,
	}
}

func AllStagesApprovedPayload(mockupID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"mockup_id": mockupID.String(),
		"status":    "approved",
	}
}
