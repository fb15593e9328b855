// Package memory implementa los puertos de repositorio en memoria.
// Se usa en tests y para levantar la API sin PostgreSQL (STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

// RFQLink línea de una solicitud de cotización (RFQ) que apunta a una solicitud de material.
type RFQLink struct {
	Parent          string
	MaterialRequest string
}

type invoiceRate struct {
	entity.LastRate
	DocStatus int
	Creation  time.Time
}

type state struct {
	companies      map[string]*entity.Company
	users          map[string]*entity.User
	customers      map[string]*entity.Customer
	salesPartners  map[string]*entity.SalesPartner
	items          map[string]*entity.Item
	bins           []entity.Bin
	purchaseRates  []invoiceRate
	sellingRates   []invoiceRate
	quotations     map[string]*entity.Quotation
	supplierQuotes map[string]*entity.SupplierQuotation
	materialReqs   map[string]*entity.MaterialRequest
	rfqLinks       []RFQLink
	salesOrders    map[string]*entity.SalesOrder
	journalEntries map[string]*entity.JournalEntry
	templates      map[string]*entity.ExpenseTemplate
	counters       map[string]int
	journalOrder   []string
}

func newState() state {
	return state{
		companies:      map[string]*entity.Company{},
		users:          map[string]*entity.User{},
		customers:      map[string]*entity.Customer{},
		salesPartners:  map[string]*entity.SalesPartner{},
		items:          map[string]*entity.Item{},
		quotations:     map[string]*entity.Quotation{},
		supplierQuotes: map[string]*entity.SupplierQuotation{},
		materialReqs:   map[string]*entity.MaterialRequest{},
		salesOrders:    map[string]*entity.SalesOrder{},
		journalEntries: map[string]*entity.JournalEntry{},
		templates:      map[string]*entity.ExpenseTemplate{},
		counters:       map[string]int{},
	}
}

// snapshot copia superficial: los valores guardados son copias inmutables.
func (s state) snapshot() state {
	c := s
	c.companies = maps.Clone(s.companies)
	c.users = maps.Clone(s.users)
	c.customers = maps.Clone(s.customers)
	c.salesPartners = maps.Clone(s.salesPartners)
	c.items = maps.Clone(s.items)
	c.bins = append([]entity.Bin(nil), s.bins...)
	c.purchaseRates = append([]invoiceRate(nil), s.purchaseRates...)
	c.sellingRates = append([]invoiceRate(nil), s.sellingRates...)
	c.quotations = maps.Clone(s.quotations)
	c.supplierQuotes = maps.Clone(s.supplierQuotes)
	c.materialReqs = maps.Clone(s.materialReqs)
	c.rfqLinks = append([]RFQLink(nil), s.rfqLinks...)
	c.salesOrders = maps.Clone(s.salesOrders)
	c.journalEntries = maps.Clone(s.journalEntries)
	c.templates = maps.Clone(s.templates)
	c.counters = maps.Clone(s.counters)
	c.journalOrder = append([]string(nil), s.journalOrder...)
	return c
}

// Store base de datos en memoria. Las transacciones se serializan y se revierten restaurando una copia.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve el conjunto de repositorios sobre el store.
func (s *Store) Repos() repository.Set {
	return repository.Set{
		Companies:          &CompanyRepo{s: s},
		Customers:          &CustomerRepo{s: s},
		SalesPartners:      &SalesPartnerRepo{s: s},
		Items:              &ItemRepo{s: s},
		Quotations:         &QuotationRepo{s: s},
		SupplierQuotations: &SupplierQuotationRepo{s: s},
		MaterialRequests:   &MaterialRequestRepo{s: s},
		SalesOrders:        &SalesOrderRepo{s: s},
		JournalEntries:     &JournalEntryRepo{s: s},
		ExpenseTemplates:   &ExpenseTemplateRepo{s: s},
		Naming:             &NamingSeries{s: s},
	}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Run ejecuta fn con los repos del store; si fn falla, el estado vuelve al previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	saved := s.st.snapshot()
	s.mu.RUnlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.st = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Datos de referencia (solo lectura para la API) ───────────────────────────

// AddCustomer registra un cliente.
func (s *Store) AddCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.customers[c.Name] = cloneCustomer(c)
}

// AddSalesPartner registra un socio comercial.
func (s *Store) AddSalesPartner(p *entity.SalesPartner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.st.salesPartners[p.Name] = &cp
}

// AddItem registra un artículo.
func (s *Store) AddItem(it *entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *it
	s.st.items[it.ItemCode] = &cp
}

// AddBin registra una existencia.
func (s *Store) AddBin(b entity.Bin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.bins = append(s.st.bins, b)
}

// AddPurchaseInvoiceItem registra una línea de factura de compra.
func (s *Store) AddPurchaseInvoiceItem(r entity.LastRate, docStatus int, creation time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.purchaseRates = append(s.st.purchaseRates, invoiceRate{LastRate: r, DocStatus: docStatus, Creation: creation})
}

// AddSalesInvoiceItem registra una línea de factura de venta.
func (s *Store) AddSalesInvoiceItem(r entity.LastRate, docStatus int, creation time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sellingRates = append(s.st.sellingRates, invoiceRate{LastRate: r, DocStatus: docStatus, Creation: creation})
}

// AddRFQLink registra una línea de RFQ.
func (s *Store) AddRFQLink(l RFQLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rfqLinks = append(s.st.rfqLinks, l)
}
