package account

type AccountType string

const (
	TypeSavings AccountType = "SAVINGS"
	TypeCurrent AccountType = "CURRENT"
	TypeSalary  AccountType = "SALARY"
)

func (t AccountType) IsValid() bool {
	switch t {
	case TypeSavings, TypeCurrent, TypeSalary:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFrozen Status = "FROZEN"
	StatusClosed Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFrozen, StatusClosed:
		return true
	}
	return false
}
