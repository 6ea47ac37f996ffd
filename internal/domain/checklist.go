package domain

import "time"

// ChecklistItem is one entry of a trip's packing checklist.
// Items live embedded in the trip; the list order is display order.
type ChecklistItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// FindChecklistItem returns the index of the item with the given id, or -1.
func FindChecklistItem(items []ChecklistItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
