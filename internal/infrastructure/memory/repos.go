package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var (
	_ repository.CompanyRepository           = (*CompanyRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
	_ repository.CustomerRepository          = (*CustomerRepo)(nil)
	_ repository.SalesPartnerRepository      = (*SalesPartnerRepo)(nil)
	_ repository.ItemRepository              = (*ItemRepo)(nil)
	_ repository.QuotationRepository         = (*QuotationRepo)(nil)
	_ repository.SupplierQuotationRepository = (*SupplierQuotationRepo)(nil)
	_ repository.MaterialRequestRepository   = (*MaterialRequestRepo)(nil)
	_ repository.SalesOrderRepository        = (*SalesOrderRepo)(nil)
	_ repository.JournalEntryRepository      = (*JournalEntryRepo)(nil)
	_ repository.ExpenseTemplateRepository   = (*ExpenseTemplateRepo)(nil)
	_ repository.NamingSeries                = (*NamingSeries)(nil)
)

// ── Empresas y usuarios ──────────────────────────────────────────────────────

type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.companies[c.Name]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.st.companies[c.Name] = &cp
	return nil
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.st.companies[name]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.companies[c.Name]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.st.companies[c.Name] = &cp
	return nil
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.st.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) CountByCompany(ctx context.Context, company string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.st.users {
		if u.Company == company {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *u
	cp.Role = role
	cp.UpdatedAt = time.Now()
	r.s.st.users[id] = &cp
	return nil
}

// ── Clientes, socios y artículos ─────────────────────────────────────────────

type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool { return c.Name == name }), nil
}

func (r *CustomerRepo) FindByLead(ctx context.Context, lead string) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool { return lead != "" && c.LeadName == lead }), nil
}

func (r *CustomerRepo) FindByProspect(ctx context.Context, prospect string) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool { return prospect != "" && c.ProspectName == prospect }), nil
}

func (r *CustomerRepo) find(match func(*entity.Customer) bool) *entity.Customer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	names := make([]string, 0, len(r.s.st.customers))
	for n := range r.s.st.customers {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if c := r.s.st.customers[n]; match(c) {
			return cloneCustomer(c)
		}
	}
	return nil
}

type SalesPartnerRepo struct{ s *Store }

func (r *SalesPartnerRepo) GetByName(ctx context.Context, name string) (*entity.SalesPartner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.salesPartners[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type ItemRepo struct{ s *Store }

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.st.items[code]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *ItemRepo) LatestBin(ctx context.Context, code string) (*entity.Bin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *entity.Bin
	for i := range r.s.st.bins {
		b := r.s.st.bins[i]
		if b.ItemCode != code {
			continue
		}
		if latest == nil || b.Modified.After(latest.Modified) {
			cp := b
			latest = &cp
		}
	}
	return latest, nil
}

func (r *ItemRepo) LastPurchaseRate(ctx context.Context, code string) (*entity.LastRate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return lastSubmitted(r.s.st.purchaseRates, code), nil
}

func (r *ItemRepo) LastSellingRate(ctx context.Context, code string) (*entity.LastRate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return lastSubmitted(r.s.st.sellingRates, code), nil
}

func lastSubmitted(rows []invoiceRate, code string) *entity.LastRate {
	var best *invoiceRate
	for i := range rows {
		row := rows[i]
		if row.ItemCode != code || row.DocStatus != entity.DocStatusSubmitted {
			continue
		}
		if best == nil || row.Creation.After(best.Creation) {
			best = &row
		}
	}
	if best == nil {
		return nil
	}
	lr := best.LastRate
	return &lr
}

// ── Documentos ───────────────────────────────────────────────────────────────

type QuotationRepo struct{ s *Store }

func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.quotations[q.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.quotations[q.Name] = cloneQuotation(q)
	return nil
}

func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.quotations[q.Name]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.quotations[q.Name] = cloneQuotation(q)
	return nil
}

func (r *QuotationRepo) GetByName(ctx context.Context, name string) (*entity.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.st.quotations[name]
	if !ok {
		return nil, nil
	}
	return cloneQuotation(q), nil
}

type SupplierQuotationRepo struct{ s *Store }

func (r *SupplierQuotationRepo) Create(ctx context.Context, sq *entity.SupplierQuotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.supplierQuotes[sq.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.supplierQuotes[sq.Name] = cloneSupplierQuotation(sq)
	return nil
}

func (r *SupplierQuotationRepo) Update(ctx context.Context, sq *entity.SupplierQuotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.supplierQuotes[sq.Name]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.supplierQuotes[sq.Name] = cloneSupplierQuotation(sq)
	return nil
}

func (r *SupplierQuotationRepo) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sq, ok := r.s.st.supplierQuotes[name]
	if !ok {
		return nil, nil
	}
	return cloneSupplierQuotation(sq), nil
}

func (r *SupplierQuotationRepo) ListSubmittedItemsByMaterialRequests(ctx context.Context, mrs []string) ([]*entity.SupplierQuotationItemRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[string]bool, len(mrs))
	for _, m := range mrs {
		wanted[m] = true
	}
	var rows []*entity.SupplierQuotationItemRow
	for _, sq := range r.s.st.supplierQuotes {
		if sq.DocStatus != entity.DocStatusSubmitted {
			continue
		}
		for _, it := range sq.Items {
			if !wanted[it.MaterialRequest] {
				continue
			}
			row := &entity.SupplierQuotationItemRow{
				Name:              it.Name,
				SupplierQuotation: sq.Name,
				ItemCode:          it.ItemCode,
				ItemName:          it.ItemName,
				Qty:               it.Qty,
				UOM:               it.UOM,
				Rate:              it.Rate,
				Amount:            it.Amount,
				MaterialRequest:   it.MaterialRequest,
				Supplier:          sq.Supplier,
				SupplierName:      sq.SupplierName,
				TransactionDate:   sq.TransactionDate,
			}
			if sq.ValidTill != nil {
				v := *sq.ValidTill
				row.ValidTill = &v
			}
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ItemCode != rows[j].ItemCode {
			return rows[i].ItemCode < rows[j].ItemCode
		}
		if !rows[i].Rate.Equal(rows[j].Rate) {
			return rows[i].Rate.LessThan(rows[j].Rate)
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

type MaterialRequestRepo struct{ s *Store }

func (r *MaterialRequestRepo) Create(ctx context.Context, mr *entity.MaterialRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.materialReqs[mr.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.materialReqs[mr.Name] = cloneMaterialRequest(mr)
	return nil
}

func (r *MaterialRequestRepo) Update(ctx context.Context, mr *entity.MaterialRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.materialReqs[mr.Name]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.materialReqs[mr.Name] = cloneMaterialRequest(mr)
	return nil
}

func (r *MaterialRequestRepo) GetByName(ctx context.Context, name string) (*entity.MaterialRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	mr, ok := r.s.st.materialReqs[name]
	if !ok {
		return nil, nil
	}
	return cloneMaterialRequest(mr), nil
}

func (r *MaterialRequestRepo) ListByQuotation(ctx context.Context, quotation string) ([]*entity.MaterialRequestSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.MaterialRequestSummary
	for _, mr := range r.s.st.materialReqs {
		if mr.QuotationRef != quotation {
			continue
		}
		sum := &entity.MaterialRequestSummary{
			Name:                mr.Name,
			TransactionDate:     mr.TransactionDate,
			WorkflowState:       mr.WorkflowState,
			MaterialRequestType: mr.MaterialRequestType,
		}
		for _, l := range r.s.st.rfqLinks {
			if l.MaterialRequest == mr.Name {
				sum.RFQName = l.Parent
				break
			}
		}
		list = append(list, sum)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MaterialRequestRepo) QuotationRef(ctx context.Context, name string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if mr, ok := r.s.st.materialReqs[name]; ok {
		return mr.QuotationRef, nil
	}
	return "", nil
}

type SalesOrderRepo struct{ s *Store }

func (r *SalesOrderRepo) Create(ctx context.Context, so *entity.SalesOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.salesOrders[so.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.salesOrders[so.Name] = cloneSalesOrder(so)
	return nil
}

func (r *SalesOrderRepo) Update(ctx context.Context, so *entity.SalesOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.salesOrders[so.Name]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.salesOrders[so.Name] = cloneSalesOrder(so)
	return nil
}

func (r *SalesOrderRepo) GetByName(ctx context.Context, name string) (*entity.SalesOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	so, ok := r.s.st.salesOrders[name]
	if !ok {
		return nil, nil
	}
	return cloneSalesOrder(so), nil
}

func (r *SalesOrderRepo) OrderedQtyByQuotationItem(ctx context.Context, quotation string) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ordered := make(map[string]decimal.Decimal)
	for _, so := range r.s.st.salesOrders {
		if so.DocStatus != entity.DocStatusSubmitted {
			continue
		}
		for _, it := range so.Items {
			if it.PrevDocName != quotation || it.QuotationItem == "" {
				continue
			}
			ordered[it.QuotationItem] = ordered[it.QuotationItem].Add(it.Qty)
		}
	}
	return ordered, nil
}

func (r *SalesOrderRepo) QuotationOfItem(ctx context.Context, quotationItem string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, q := range r.s.st.quotations {
		for _, it := range q.Items {
			if it.Name == quotationItem {
				return q.Name, nil
			}
		}
	}
	return "", nil
}

type JournalEntryRepo struct{ s *Store }

func (r *JournalEntryRepo) Create(ctx context.Context, je *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.journalEntries[je.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.journalEntries[je.Name] = cloneJournalEntry(je)
	r.s.st.journalOrder = append(r.s.st.journalOrder, je.Name)
	return nil
}

func (r *JournalEntryRepo) GetByName(ctx context.Context, name string) (*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	je, ok := r.s.st.journalEntries[name]
	if !ok {
		return nil, nil
	}
	return cloneJournalEntry(je), nil
}

func (r *JournalEntryRepo) ListByReference(ctx context.Context, doctype, name string) ([]*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.JournalEntry
	for _, n := range r.s.st.journalOrder {
		je := r.s.st.journalEntries[n]
		if je.ReferenceName == name && (doctype == "" || je.ReferenceDoctype == doctype) {
			list = append(list, cloneJournalEntry(je))
		}
	}
	return list, nil
}

type ExpenseTemplateRepo struct{ s *Store }

func (r *ExpenseTemplateRepo) Save(ctx context.Context, t *entity.ExpenseTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.templates[t.Name] = cloneTemplate(t)
	return nil
}

func (r *ExpenseTemplateRepo) GetByName(ctx context.Context, name string) (*entity.ExpenseTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.st.templates[name]
	if !ok {
		return nil, nil
	}
	return cloneTemplate(t), nil
}

// NamingSeries contador por prefijo y año.
type NamingSeries struct{ s *Store }

func (n *NamingSeries) Next(ctx context.Context, doctype string, at time.Time) (string, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	key := entity.NamingPrefix(doctype) + "-" + at.Format("2006")
	n.s.st.counters[key]++
	return entity.FormatName(doctype, at.Year(), n.s.st.counters[key]), nil
}
