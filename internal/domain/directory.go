package domain

// Client a person who books services, identified by DNI
type Client struct {
	DNI     string
	Name    string
	Surname string
	Email   string
	Phone   *string
}

// FullName returns "Name Surname"
func (c *Client) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}

// Company a service provider, identified by its fiscal ID (CIF)
type Company struct {
	CIF         string
	Name        string
	ContactName string
	Email       string
}
