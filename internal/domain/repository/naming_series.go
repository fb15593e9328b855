package repository

import (
	"context"
	"time"
)

// NamingSeries asigna nombres correlativos por tipo de documento y año (SAL-QTN-2026-00001).
type NamingSeries interface {
	Next(ctx context.Context, doctype string, at time.Time) (string, error)
}
