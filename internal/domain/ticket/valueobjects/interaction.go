package valueobjects

import "fmt"

// AuthorRole identifies which side of a ticket wrote an interaction.
type AuthorRole string

const (
	AuthorClient AuthorRole = "client"
	AuthorAgent  AuthorRole = "agent"
)

func (r AuthorRole) String() string {
	return string(r)
}

func (r AuthorRole) IsValid() bool {
	return r == AuthorClient || r == AuthorAgent
}

func NewAuthorRole(s string) (AuthorRole, error) {
	r := AuthorRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid author role: %s", s)
	}
	return r, nil
}

// InteractionKind classifies an entry in the ticket thread.
type InteractionKind string

const (
	InteractionOpen       InteractionKind = "open"
	InteractionMessage    InteractionKind = "message"
	InteractionReturn     InteractionKind = "return"
	InteractionConclusion InteractionKind = "conclusion"
)

var validInteractionKinds = map[InteractionKind]bool{
	InteractionOpen:       true,
	InteractionMessage:    true,
	InteractionReturn:     true,
	InteractionConclusion: true,
}

func (k InteractionKind) String() string {
	return string(k)
}

func (k InteractionKind) IsValid() bool {
	return validInteractionKinds[k]
}

func NewInteractionKind(s string) (InteractionKind, error) {
	k := InteractionKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid interaction kind: %s", s)
	}
	return k, nil
}
