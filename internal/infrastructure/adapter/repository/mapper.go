package repository

import (
	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

func userToModel(u *entity.User) model.User {
	var username *string
	if u.Username != "" {
		name := u.Username
		username = &name
	}
	return model.User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role.String(),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m *model.User) *entity.User {
	u := &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         entity.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Username != nil {
		u.Username = *m.Username
	}
	return u
}

func ownerFromModel(m *model.User) entity.OwnerSummary {
	return entity.OwnerSummary{
		UserID:    m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      entity.Role(m.Role),
		IsActive:  m.IsActive,
		JoinedAt:  m.CreatedAt,
	}
}

func accountToModel(a *entity.Account) model.Account {
	return model.Account{
		ID:            a.ID,
		UserID:        a.UserID,
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.AccountType),
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func accountFromModel(m *model.Account) entity.Account {
	return entity.Account{
		ID:            m.ID,
		UserID:        m.UserID,
		AccountNumber: m.AccountNumber,
		AccountType:   entity.AccountType(m.AccountType),
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func transactionToModel(t *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
	}
}

func transactionFromModel(m *model.Transaction) entity.Transaction {
	return entity.Transaction{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Type:         entity.TransactionType(m.Type),
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		Description:  m.Description,
		Status:       entity.TransactionStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func activityFromModel(m *model.Transaction) entity.TransactionActivity {
	return entity.TransactionActivity{
		Transaction:   transactionFromModel(m),
		AccountNumber: m.Account.AccountNumber,
		AccountType:   entity.AccountType(m.Account.AccountType),
		Owner:         ownerFromModel(&m.Account.User),
	}
}
