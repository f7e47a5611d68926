// Package types - Consultant and client profile types
package types

// ConsultantProfile identifies who issues the quote
type ConsultantProfile struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Logo        string `json:"logo,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
	BBBEEStatus string `json:"bbbee_status,omitempty"`
	CIPCNumber  string `json:"cipc_number,omitempty"`
}

// Client is a saved client record
type Client struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PhysicalAddress string `json:"physical_address,omitempty"`
}

// BusinessProfile is the saved identity applied to new quotes
type BusinessProfile struct {
	BusinessName string            `json:"business_name"`
	Consultant   ConsultantProfile `json:"consultant"`
}
