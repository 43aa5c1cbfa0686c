package entity

// Role ID constants. Identity lives in the marketplace's auth service; the
// role arrives in the access token and is only interpreted here.
const (
	RoleIDAdmin    = 1
	RoleIDCustomer = 2
)

// RoleNames constants
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
