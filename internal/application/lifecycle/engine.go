package lifecycle

import (
	"context"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}

// Persist guarda el documento con los repos de la transacción.
type Persist func(ctx context.Context, repos repository.Set) error

// Engine ejecuta guardados y envíos de documentos pasando por los hooks registrados.
type Engine struct {
	registry *Registry
	tx       TxRunner
	log      *logger.Logger
}

// NewEngine construye el motor.
func NewEngine(registry *Registry, tx TxRunner, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{registry: registry, tx: tx, log: log}
}

// Registry devuelve el registro de hooks.
func (e *Engine) Registry() *Registry { return e.registry }

// Save corre validate y before_save (en ese orden, como la plataforma) y persiste el documento, todo en una transacción.
// Solo se guardan borradores.
func (e *Engine) Save(ctx context.Context, doc entity.Document, persist Persist) ([]string, error) {
	if doc.Status() != entity.DocStatusDraft {
		return nil, domain.Invalid(domain.ErrNotDraft, "%s %s", doc.DocType(), doc.DocName())
	}
	var messages []string
	err := e.tx.Run(ctx, func(repos repository.Set) error {
		hc := e.context(doc, repos)
		for _, ev := range []Event{EventValidate, EventBeforeSave} {
			hc.Event = ev
			if err := e.registry.Dispatch(ctx, hc); err != nil {
				return err
			}
		}
		if err := persist(ctx, repos); err != nil {
			return err
		}
		messages = hc.Messages()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Submit corre validate y before_submit, marca el documento como enviado, lo persiste
// y luego corre on_submit. Cualquier error revierte la transacción completa.
func (e *Engine) Submit(ctx context.Context, doc entity.Document, persist Persist) ([]string, error) {
	switch doc.Status() {
	case entity.DocStatusDraft:
	case entity.DocStatusCancelled:
		return nil, domain.Invalid(domain.ErrDocumentCancelled, "%s %s", doc.DocType(), doc.DocName())
	default:
		return nil, domain.Invalid(domain.ErrNotDraft, "%s %s ya fue enviado", doc.DocType(), doc.DocName())
	}
	var messages []string
	err := e.tx.Run(ctx, func(repos repository.Set) error {
		hc := e.context(doc, repos)
		for _, ev := range []Event{EventValidate, EventBeforeSubmit} {
			hc.Event = ev
			if err := e.registry.Dispatch(ctx, hc); err != nil {
				return err
			}
		}
		doc.SetStatus(entity.DocStatusSubmitted)
		if err := persist(ctx, repos); err != nil {
			return err
		}
		hc.Event = EventOnSubmit
		if err := e.registry.Dispatch(ctx, hc); err != nil {
			return err
		}
		messages = hc.Messages()
		return nil
	})
	if err != nil {
		doc.SetStatus(entity.DocStatusDraft)
		return nil, err
	}
	e.log.Info().Str("doctype", doc.DocType()).Str("name", doc.DocName()).Msg("documento enviado")
	return messages, nil
}

func (e *Engine) context(doc entity.Document, repos repository.Set) *HookContext {
	return &HookContext{
		Doc:   doc,
		Repos: repos,
		Log: e.log.WithFields(map[string]any{
			"doctype": doc.DocType(),
			"name":    doc.DocName(),
		}),
	}
}
