package agents

import "errors"

var (
	ErrAgentNotFound = errors.New("agent not found")
)
