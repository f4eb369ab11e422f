package models

import (
	"fmt"

	"github.com/amigo-bingo/backend/internal/domain"
)

// Participants is the fixed roster of players, known at deploy time.
type Participants []string

// Contains reports whether name is part of the roster.
func (p Participants) Contains(name string) bool {
	for _, n := range p {
		if n == name {
			return true
		}
	}
	return false
}

// ValidateAssignments checks that m assigns every participant in the roster a
// receiver: the mapping must cover each participant exactly once as a giver,
// every receiver must belong to the roster, and nobody may give to themselves.
// Receivers may repeat; the mapping is not required to be a derangement.
func ValidateAssignments(roster Participants, m map[string]string) error {
	if len(m) != len(roster) {
		return fmt.Errorf("mapping must contain all %d participants", len(roster))
	}
	for _, giver := range roster {
		receiver, ok := m[giver]
		if !ok {
			return fmt.Errorf("missing entry for %s", giver)
		}
		if receiver == giver {
			return fmt.Errorf("%s cannot give to themselves", giver)
		}
		if !roster.Contains(receiver) {
			return fmt.Errorf("invalid receiver %q: %w", receiver, domain.ErrUnknownParticipant)
		}
	}
	return nil
}
