package entity

import (
	"fmt"
	"time"
)

// Estados de documento (docstatus).
const (
	DocStatusDraft     = 0 // borrador, editable
	DocStatusSubmitted = 1 // enviado, inmutable
	DocStatusCancelled = 2 // cancelado
)

// Tipos de documento que manejan los hooks del ciclo de vida.
const (
	DocTypeQuotation         = "Quotation"
	DocTypeSupplierQuotation = "Supplier Quotation"
	DocTypeMaterialRequest   = "Material Request"
	DocTypeSalesOrder        = "Sales Order"
	DocTypeJournalEntry      = "Journal Entry"
)

// Document es el contrato mínimo de un documento despachable por el registro de hooks.
type Document interface {
	DocType() string
	DocName() string
	Status() int
	SetStatus(status int)
}

var namingPrefixes = map[string]string{
	DocTypeQuotation:         "SAL-QTN",
	DocTypeSupplierQuotation: "PUR-SQTN",
	DocTypeMaterialRequest:   "MAT-MR",
	DocTypeSalesOrder:        "SAL-ORD",
	DocTypeJournalEntry:      "ACC-JV",
}

// NamingPrefix prefijo de la serie de nombres del tipo de documento.
func NamingPrefix(doctype string) string {
	if p, ok := namingPrefixes[doctype]; ok {
		return p
	}
	return "DOC"
}

// DateOf reduce t a su día calendario (medianoche UTC). Las columnas DATE vuelven de la base
// en UTC, así que todas las comparaciones de fechas de documentos pasan por aquí.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatName arma el nombre del documento: PREFIJO-AAAA-NNNNN.
func FormatName(doctype string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", NamingPrefix(doctype), year, seq)
}
