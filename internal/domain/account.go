package domain

import "time"

// AccountType classifies what an account represents.
type AccountType string

const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCrypto     AccountType = "crypto"
	AccountTypeProperty   AccountType = "property"
	AccountTypeOtherAsset AccountType = "other_asset"
)

// AccountStatus tracks whether an account still accepts activity.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusArchived AccountStatus = "archived"
)

// transferOnlyTypes are account types whose activity is pure asset
// movement. A transfer where BOTH legs sit on such accounts cannot
// carry a spending category.
var transferOnlyTypes = map[AccountType]bool{
	AccountTypeInvestment: true,
	AccountTypeCrypto:     true,
}

// Account represents a financial account owned by a family.
type Account struct {
	ID        string
	FamilyID  string
	Name      string
	Currency  string
	Type      AccountType
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the account still accepts new activity.
func (a *Account) Active() bool {
	return a.Status == AccountStatusActive
}

// TransferOnly reports whether the account's type is category-exempt.
func (a *Account) TransferOnly() bool {
	return transferOnlyTypes[a.Type]
}

// ValidType reports whether t is a known account type.
func ValidType(t AccountType) bool {
	switch t {
	case AccountTypeDepository, AccountTypeCredit, AccountTypeLoan,
		AccountTypeInvestment, AccountTypeCrypto, AccountTypeProperty,
		AccountTypeOtherAsset:
		return true
	}

	return false
}
