package models

// User is the authenticated account holder, fetched once at login.
type User struct {
	ID                       string `json:"userId"`
	FirstName                string `json:"firstName"`
	LastName                 string `json:"lastName"`
	EmailAddress             string `json:"emailAddress"`
	MacStatus                string `json:"macStatus"`
	AccountType              string `json:"accountType"`
	RegionIdentifier         string `json:"regionIdentifier"`
	DWAccountNumber          string `json:"dw_AccountNumber,omitempty"`
	CanTradeOnUnsettledFunds bool   `json:"canTradeOnUnsettledFunds"`
	Username                 string `json:"username,omitempty"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
