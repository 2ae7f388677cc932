package rewardshandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers is the watermill-facing contract of the rewards module.
type Handlers interface {
	HandleActionReceived(msg *message.Message) ([]*message.Message, error)
	HandleAccountDeactivateRequested(msg *message.Message) ([]*message.Message, error)
}
