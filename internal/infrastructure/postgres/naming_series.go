package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.NamingSeries = (*NamingSeries)(nil)

// NamingSeries contador por prefijo y año en la tabla naming_series.
type NamingSeries struct {
	q Querier
}

// NewNamingSeries construye la serie de nombres.
func NewNamingSeries(q Querier) *NamingSeries {
	return &NamingSeries{q: q}
}

// Next incrementa el contador de forma atómica (upsert) y devuelve el nombre.
func (n *NamingSeries) Next(ctx context.Context, doctype string, at time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%d", entity.NamingPrefix(doctype), at.Year())
	var current int
	err := n.q.QueryRow(ctx, `
		INSERT INTO naming_series (prefix, current) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET current = naming_series.current + 1
		RETURNING current`, prefix).Scan(&current)
	if err != nil {
		return "", fmt.Errorf("naming series %s: %w", prefix, err)
	}
	return entity.FormatName(doctype, at.Year(), current), nil
}
