package identity

import (
	"context"

	"github.com/google/uuid"
)

// Summary is the public identity shown next to messages, requests and orders
type Summary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Picture string    `json:"picture,omitempty"`
}

// Summary projects the user into its public summary
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Picture: u.Picture}
}

// LoadSummaries fetches the given users once each and indexes their summaries
// by id. Unknown ids are absent from the result.
func LoadSummaries(ctx context.Context, repo UserRepository, ids []uuid.UUID) (map[uuid.UUID]Summary, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	summaries := make(map[uuid.UUID]Summary, len(unique))
	if len(unique) == 0 {
		return summaries, nil
	}
	users, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		summaries[u.ID] = u.Summary()
	}
	return summaries, nil
}
