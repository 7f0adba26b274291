package domain

// Merchant is a merchant account record as returned by the storefront API.
type Merchant struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	StoreName string `json:"store_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Token     string `json:"token,omitempty"`
}

// MerchantRegistration is the payload for creating a merchant account.
type MerchantRegistration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	StoreName string `json:"store_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// MerchantUpdate is the payload for updating merchant profile fields.
type MerchantUpdate struct {
	Email     string `json:"email,omitempty"`
	StoreName string `json:"store_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
