// seed_items genera un script SQL para poblar el maestro de artículos
// a partir de un CSV exportado del ERP (separador ';').
//
// Uso: go run ./cmd/seed_items [-latin1] [-out items_seed.sql] articulos.csv
// Columnas: item_code;item_name;description;stock_uom;brand (la cabecera se omite).
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type itemRow struct {
	code, name, description, uom, brand string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	outPath := flag.String("out", "items_seed.sql", "archivo SQL de salida")
	flag.Parse()

	csvPath := "articulos.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readItems(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows, csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d artículos\n", *outPath, len(rows))
}

// readItems lee el CSV; filas repetidas por código se quedan con la última.
func readItems(r io.Reader) ([]itemRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	byCode := make(map[string]itemRow)
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")), "item_code") {
				continue
			}
		}
		row := itemRow{
			code:        field(rec, 0),
			name:        field(rec, 1),
			description: field(rec, 2),
			uom:         field(rec, 3),
			brand:       field(rec, 4),
		}
		if row.code == "" {
			continue
		}
		if row.name == "" {
			row.name = row.code
		}
		byCode[row.code] = row
	}

	rows := make([]itemRow, 0, len(byCode))
	for _, r := range byCode {
		rows = append(rows, r)
	}
	// Salida estable
	sort.Slice(rows, func(i, j int) bool { return rows[i].code < rows[j].code })
	return rows, nil
}

func writeSQL(w io.Writer, rows []itemRow, source string) error {
	var b strings.Builder
	b.WriteString("-- Maestro de artículos\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	if len(rows) == 0 {
		b.WriteString("-- sin filas\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO items (item_code, item_name, description, stock_uom, brand) VALUES\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s')",
			escapeSQL(r.code), escapeSQL(r.name), escapeSQL(r.description), escapeSQL(r.uom), escapeSQL(r.brand))
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (item_code) DO UPDATE SET\n")
	b.WriteString("  item_name = EXCLUDED.item_name, description = EXCLUDED.description,\n")
	b.WriteString("  stock_uom = EXCLUDED.stock_uom, brand = EXCLUDED.brand;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
