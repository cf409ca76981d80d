package models

// Branch is a physical location owning stock entries.
type Branch struct {
	ID          int    `json:"id_branch"`
	Name        string `json:"branch_name"`
	ManagerName string `json:"manager_name"`
	Address     string `json:"branch_address"`
	City        string `json:"city"`
}
