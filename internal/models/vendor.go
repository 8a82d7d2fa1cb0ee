package models

// VendorProfile describes the business itself. It is a singleton per owner:
// the store layer's Set detects an existing profile for the owner and
// updates it in place instead of creating a second document.
type VendorProfile struct {
	Meta
	ShopName  string `json:"shopName" firestore:"shopName"`
	OwnerName string `json:"ownerName,omitempty" firestore:"ownerName,omitempty"`
	Phone     string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Email     string `json:"email,omitempty" firestore:"email,omitempty"`
	Address   string `json:"address,omitempty" firestore:"address,omitempty"`
	Currency  string `json:"currency,omitempty" firestore:"currency,omitempty"`
}
