package lifecycle

import (
	"context"
	"sync"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// Event nombre del evento del ciclo de vida de un documento.
type Event string

const (
	EventBeforeSave   Event = "before_save"
	EventValidate     Event = "validate"
	EventBeforeSubmit Event = "before_submit"
	EventOnSubmit     Event = "on_submit"
)

// HookContext es lo que recibe cada handler: el documento, el evento, los repos
// de la transacción en curso y un canal de mensajes para el usuario.
type HookContext struct {
	Doc   entity.Document
	Event Event
	Repos repository.Set
	Log   *logger.Logger

	messages []string
}

// Notify agrega un mensaje informativo para el usuario.
func (hc *HookContext) Notify(msg string) {
	hc.messages = append(hc.messages, msg)
}

// Messages mensajes acumulados por los handlers.
func (hc *HookContext) Messages() []string {
	return hc.messages
}

// Handler callback ligado a un (doctype, evento). Un error aborta la operación.
type Handler func(ctx context.Context, hc *HookContext) error

type key struct {
	doctype string
	event   Event
}

type registration struct {
	name string
	fn   Handler
}

// Registry tabla de hooks por tipo de documento y evento.
type Registry struct {
	mu    sync.RWMutex
	hooks map[key][]registration
}

// NewRegistry crea un registro vacío.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[key][]registration)}
}

// Register agrega un handler; se ejecutan en orden de registro.
func (r *Registry) Register(doctype string, event Event, name string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{doctype: doctype, event: event}
	r.hooks[k] = append(r.hooks[k], registration{name: name, fn: fn})
}

// Names nombres de los handlers registrados para (doctype, evento).
func (r *Registry) Names(doctype string, event Event) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	regs := r.hooks[key{doctype: doctype, event: event}]
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.name
	}
	return names
}

// Dispatch ejecuta los handlers del documento para hc.Event. El primer error corta la cadena.
func (r *Registry) Dispatch(ctx context.Context, hc *HookContext) error {
	r.mu.RLock()
	regs := append([]registration(nil), r.hooks[key{doctype: hc.Doc.DocType(), event: hc.Event}]...)
	r.mu.RUnlock()

	for _, reg := range regs {
		if err := reg.fn(ctx, hc); err != nil {
			if hc.Log != nil {
				hc.Log.Warn().Err(err).
					Str("doctype", hc.Doc.DocType()).
					Str("name", hc.Doc.DocName()).
					Str("event", string(hc.Event)).
					Str("hook", reg.name).
					Msg("hook rechazó la operación")
			}
			return err
		}
	}
	return nil
}
