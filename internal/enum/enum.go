// Package enum holds the string constants shared with the upstream API's
// wire format.
package enum

// Transaction statuses as the upstream stores them.
const (
	TransactionStatusCompleted  = "Completed"
	TransactionStatusWaiting    = "Waiting for payment"
	TransactionStatusProcessing = "Processing"
	TransactionStatusCanceled   = "Canceled"
)

// Actor roles collapsed from the upstream isAdmin/isManager flags.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)
