package model

// Conversation is the append-only message log. Insertion order is display
// order; nothing is reordered, deduplicated or removed.
type Conversation struct {
	messages []Message
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Append stores a copy of msg and returns its index
func (c *Conversation) Append(msg Message) int {
	c.messages = append(c.messages, msg.clone())
	return len(c.messages) - 1
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// At returns a copy of the message at index i
func (c *Conversation) At(i int) Message {
	return c.messages[i].clone()
}

func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.At(len(c.messages) - 1), true
}

// Messages returns a snapshot; mutating it does not touch the conversation
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.clone()
	}
	return out
}
