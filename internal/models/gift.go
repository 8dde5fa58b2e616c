package models

// Gift is a shop item a child can buy with earned points. Buying moves a
// copy into the child's inventory and deducts the cost from the spendable
// balance only; lifetime score is never reduced.
type Gift struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Cost     int    `json:"cost"`
	ImageURL string `json:"imageUrl,omitempty"`
}
