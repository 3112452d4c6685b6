package domain

// AdminSession is the persisted admin login state. It is stored under
// its own key, independent of the cart snapshot.
type AdminSession struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Email      string `json:"email,omitempty"`
}
