package domain

import "time"

// EntriesPostedEvent is emitted after a mutating command successfully applied
// its entry set to the ledger.
type EntriesPostedEvent struct {
	EventID    string     `json:"eventID"`
	Operation  string     `json:"operation"`
	CardStatus CardStatus `json:"cardStatus"`
	OccurredAt time.Time  `json:"occurredAt"`
	Entries    []Entry    `json:"entries"`
}
