package model

// Credential represents a login stored in the inventory.
type Credential struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
}

// Domain represents a DNS name managed in the inventory.
type Domain struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}
