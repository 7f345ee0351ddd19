package domain

// A Subscription reflects the premium subscription state resolved for
// a storefront user. The service only reads it; the subscription
// record itself is owned by an external billing system.
type Subscription struct {
	Username string
	Active   bool
}
