// Package queue defines message payloads exchanged over the message broker.
package queue

// MenuChangedEvent is published after a successful menu item write. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database. Action is one of "created",
// "updated" or "deleted".
type MenuChangedEvent struct {
	RestaurantID uint64 `json:"restaurant_id"`
	MenuItemID   uint64 `json:"menu_item_id"`
	ItemName     string `json:"item_name"`
	Action       string `json:"action"`
	ChangedAt    string `json:"changed_at"`
}
