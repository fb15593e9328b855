package accounts

import (
	"context"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

// JournalEntryUseCase consultas de asientos generados.
type JournalEntryUseCase struct {
	repo repository.JournalEntryRepository
}

// NewJournalEntryUseCase construye el caso de uso.
func NewJournalEntryUseCase(repo repository.JournalEntryRepository) *JournalEntryUseCase {
	return &JournalEntryUseCase{repo: repo}
}

// Get obtiene un asiento.
func (uc *JournalEntryUseCase) Get(ctx context.Context, company, name string) (*dto.JournalEntryResponse, error) {
	je, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if je == nil || je.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "asiento %s", name)
	}
	return toJournalEntryResponse(je), nil
}

// ListByReference asientos de un documento origen (por defecto pedido de venta).
func (uc *JournalEntryUseCase) ListByReference(ctx context.Context, company string, q dto.JournalEntryQuery) (*dto.JournalEntryListResponse, error) {
	doctype := q.ReferenceDoctype
	if doctype == "" {
		doctype = entity.DocTypeSalesOrder
	}
	list, err := uc.repo.ListByReference(ctx, doctype, q.ReferenceName)
	if err != nil {
		return nil, err
	}
	out := &dto.JournalEntryListResponse{Items: make([]dto.JournalEntryResponse, 0, len(list))}
	for _, je := range list {
		if je.Company != company {
			continue
		}
		out.Items = append(out.Items, *toJournalEntryResponse(je))
	}
	return out, nil
}

func toJournalEntryResponse(je *entity.JournalEntry) *dto.JournalEntryResponse {
	out := &dto.JournalEntryResponse{
		Name:             je.Name,
		Company:          je.Company,
		VoucherType:      je.VoucherType,
		PostingDate:      dto.NewDate(je.PostingDate),
		UserRemark:       je.UserRemark,
		ReferenceDoctype: je.ReferenceDoctype,
		ReferenceName:    je.ReferenceName,
		DocStatus:        je.DocStatus,
		TotalDebit:       je.TotalDebit(),
		TotalCredit:      je.TotalCredit(),
		Accounts:         make([]dto.JournalEntryAccountResponse, len(je.Accounts)),
		CreatedAt:        je.CreatedAt,
	}
	for i, a := range je.Accounts {
		out.Accounts[i] = dto.JournalEntryAccountResponse{
			Idx:        a.Idx,
			Account:    a.Account,
			Debit:      a.Debit,
			Credit:     a.Credit,
			IsAdvance:  a.IsAdvance,
			CostCenter: a.CostCenter,
		}
	}
	return out
}
