package memory

import "github.com/powerkey/power-app/internal/domain/entity"

// Los documentos se guardan y se devuelven como copias para aislar a los llamadores.

func cloneQuotation(q *entity.Quotation) *entity.Quotation {
	c := *q
	c.Expenses = entity.CopyExpenses(q.Expenses)
	c.Comments = append([]string(nil), q.Comments...)
	if q.ValidTill != nil {
		v := *q.ValidTill
		c.ValidTill = &v
	}
	c.Items = make([]*entity.QuotationItem, len(q.Items))
	for i, it := range q.Items {
		cp := *it
		c.Items[i] = &cp
	}
	return &c
}

func cloneSupplierQuotation(s *entity.SupplierQuotation) *entity.SupplierQuotation {
	c := *s
	c.Expenses = entity.CopyExpenses(s.Expenses)
	if s.ValidTill != nil {
		v := *s.ValidTill
		c.ValidTill = &v
	}
	c.Items = make([]*entity.SupplierQuotationItem, len(s.Items))
	for i, it := range s.Items {
		cp := *it
		c.Items[i] = &cp
	}
	return &c
}

func cloneMaterialRequest(m *entity.MaterialRequest) *entity.MaterialRequest {
	c := *m
	c.Items = make([]*entity.MaterialRequestItem, len(m.Items))
	for i, it := range m.Items {
		cp := *it
		c.Items[i] = &cp
	}
	return &c
}

func cloneSalesOrder(s *entity.SalesOrder) *entity.SalesOrder {
	c := *s
	c.Expenses = entity.CopyExpenses(s.Expenses)
	c.SalesTeam = append([]entity.SalesTeamMember(nil), s.SalesTeam...)
	c.PaymentSchedule = append([]entity.PaymentScheduleRow(nil), s.PaymentSchedule...)
	if s.DeliveryDate != nil {
		v := *s.DeliveryDate
		c.DeliveryDate = &v
	}
	c.Items = make([]*entity.SalesOrderItem, len(s.Items))
	for i, it := range s.Items {
		cp := *it
		c.Items[i] = &cp
	}
	return &c
}

func cloneJournalEntry(j *entity.JournalEntry) *entity.JournalEntry {
	c := *j
	c.Accounts = make([]*entity.JournalEntryAccount, len(j.Accounts))
	for i, a := range j.Accounts {
		cp := *a
		c.Accounts[i] = &cp
	}
	return &c
}

func cloneCustomer(cu *entity.Customer) *entity.Customer {
	c := *cu
	c.SalesTeam = append([]entity.SalesTeamMember(nil), cu.SalesTeam...)
	return &c
}

func cloneTemplate(t *entity.ExpenseTemplate) *entity.ExpenseTemplate {
	c := *t
	c.Expenses = entity.CopyExpenses(t.Expenses)
	return &c
}
