package repository

// Set agrupa los repositorios atados a una misma transacción.
// Los hooks del ciclo de vida reciben un Set para leer y escribir documentos relacionados.
type Set struct {
	Companies          CompanyRepository
	Customers          CustomerRepository
	SalesPartners      SalesPartnerRepository
	Items              ItemRepository
	Quotations         QuotationRepository
	SupplierQuotations SupplierQuotationRepository
	MaterialRequests   MaterialRequestRepository
	SalesOrders        SalesOrderRepository
	JournalEntries     JournalEntryRepository
	ExpenseTemplates   ExpenseTemplateRepository
	Naming             NamingSeries
}
