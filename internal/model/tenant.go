package model

// Tenant is one restaurant account in the multi-tenant platform. Each
// tenant is addressed by a unique hostname (subdomain routing), and the
// hostname doubles as the fallback identity key: the backend's overview
// DTO omits the id, so lookups may have to match on Hostname instead.
//
// Fields:
//  ID          – tenant identifier (may be resolved via hostname, see service layer).
//  Name        – display name of the restaurant.
//  Hostname    – unique hostname the tenant is served under.
//  Description – marketing blurb, may be empty.
//  LogoURL     – logo image URL, may be empty.
//  IsActive    – whether the tenant is currently enabled.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Hostname    string `json:"hostname"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	IsActive    bool   `json:"isActive"`
}
