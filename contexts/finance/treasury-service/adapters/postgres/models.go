package postgresadapter

import (
	"time"

	"demoday/contexts/finance/treasury-service/domain/entities"
)

type accountModel struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Balance   int64     `gorm:"column:balance"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "treasury_accounts" }

func (m accountModel) toEntity() entities.Account {
	return entities.Account{
		Name:    m.Name,
		Balance: m.Balance,
	}
}

func accountModelFromEntity(account entities.Account) accountModel {
	return accountModel{
		Name:      account.Name,
		Balance:   account.Balance,
		UpdatedAt: time.Now().UTC(),
	}
}

type transferModel struct {
	TransferID string    `gorm:"column:transfer_id;primaryKey"`
	Account    string    `gorm:"column:account"`
	Target     string    `gorm:"column:target"`
	Amount     int64     `gorm:"column:amount"`
	Status     string    `gorm:"column:status"`
	FailReason string    `gorm:"column:fail_reason"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (transferModel) TableName() string { return "treasury_transfers" }

func (m transferModel) toEntity() entities.Transfer {
	return entities.Transfer{
		TransferID: m.TransferID,
		Account:    m.Account,
		Target:     m.Target,
		Amount:     m.Amount,
		Status:     entities.TransferStatus(m.Status),
		FailReason: m.FailReason,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func transferModelFromEntity(transfer entities.Transfer) transferModel {
	return transferModel{
		TransferID: transfer.TransferID,
		Account:    transfer.Account,
		Target:     transfer.Target,
		Amount:     transfer.Amount,
		Status:     string(transfer.Status),
		FailReason: transfer.FailReason,
		CreatedAt:  transfer.CreatedAt.UTC(),
	}
}

func toTransferEntities(rows []transferModel) []entities.Transfer {
	out := make([]entities.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}
