package printing

import (
	"context"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// QuotationPDFGenerator puerto de salida: genera el PDF de una cotización.
type QuotationPDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation, company *entity.Company) ([]byte, error)
}

// QuotationPDFUseCase impresión de cotizaciones.
type QuotationPDFUseCase struct {
	quotations repository.QuotationRepository
	companies  repository.CompanyRepository
	gen        QuotationPDFGenerator
	log        *logger.Logger
}

// NewQuotationPDFUseCase construye el caso de uso.
func NewQuotationPDFUseCase(quotations repository.QuotationRepository, companies repository.CompanyRepository, gen QuotationPDFGenerator, log *logger.Logger) *QuotationPDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotationPDFUseCase{quotations: quotations, companies: companies, gen: gen, log: log}
}

// Render devuelve el PDF y el nombre de archivo sugerido.
func (uc *QuotationPDFUseCase) Render(ctx context.Context, company, name string) ([]byte, string, error) {
	q, err := uc.quotations.GetByName(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if q == nil || q.Company != company {
		return nil, "", domain.Invalid(domain.ErrNotFound, "cotización %s", name)
	}
	c, err := uc.companies.GetByName(ctx, company)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", domain.Invalid(domain.ErrNotFound, "empresa %s", company)
	}
	pdf, err := uc.gen.GenerateQuotationPDF(ctx, q, c)
	if err != nil {
		uc.log.Error().Err(err).Str("quotation", name).Msg("generar pdf")
		return nil, "", err
	}
	return pdf, q.Name + ".pdf", nil
}
