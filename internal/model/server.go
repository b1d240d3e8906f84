package model

// Server represents a physical or virtual machine in the inventory.
type Server struct {
	ID            int    `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	Address       string `yaml:"address,omitempty" json:"address,omitempty"`
	CredentialIDs []int  `yaml:"credentials,omitempty" json:"credentials,omitempty"`
	DomainIDs     []int  `yaml:"domains,omitempty" json:"domains,omitempty"`
}
