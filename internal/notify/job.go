// Package notify holds the welcome-notification job shape and the bounded
// retry policy applied to delivery attempts.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Job is the payload serialized onto the notification queue.
type Job struct {
	Email string `json:"email"`
}

// EncodeJob serializes a job for publishing.
func EncodeJob(job Job) ([]byte, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal notification job: %w", err)
	}
	return data, nil
}

// DecodeJob parses a queue message body. A malformed or empty payload is a
// poison message: callers acknowledge and drop it rather than retry forever.
func DecodeJob(body []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return Job{}, fmt.Errorf("unmarshal notification job: %w", err)
	}
	if strings.TrimSpace(job.Email) == "" {
		return Job{}, fmt.Errorf("notification job missing email")
	}
	return job, nil
}
