package domain

type Address struct {
	Street     string `json:"street" yaml:"street" validate:"max=200"`
	City       string `json:"city" yaml:"city" validate:"max=100"`
	PostalCode string `json:"postal_code" yaml:"postal_code" validate:"max=20"`
	Country    string `json:"country" yaml:"country" validate:"max=100"`
}

type Profile struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
}

type ProfilePatch struct {
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
}
