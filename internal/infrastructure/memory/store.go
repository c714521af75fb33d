// Package memory implementa los repositorios del libro mayor sobre mapas en
// proceso. Sirve como doble de pruebas del motor de conciliación: el TxRunner
// toma una instantánea antes de ejecutar el callback y la restaura si falla,
// reproduciendo la garantía todo-o-nada de la transacción real.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/repository"
)

// Store guarda el estado del libro mayor en memoria.
type Store struct {
	mu      sync.Mutex
	items   map[string]entity.Item
	changes []entity.ChangeRecord
	nextID  int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{items: make(map[string]entity.Item), nextID: 1}
}

// snapshot copia el estado completo para poder revertir una transacción.
type snapshot struct {
	items   map[string]entity.Item
	changes []entity.ChangeRecord
	nextID  int64
}

func (s *Store) take() snapshot {
	items := make(map[string]entity.Item, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	changes := make([]entity.ChangeRecord, len(s.changes))
	copy(changes, s.changes)
	return snapshot{items: items, changes: changes, nextID: s.nextID}
}

func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.changes = snap.changes
	s.nextID = snap.nextID
}

// ItemRepository devuelve un repo de items atado al store.
func (s *Store) ItemRepository() repository.ItemRepository { return &itemRepo{s: s} }

// ChangeRepository devuelve un repo de cambios atado al store.
func (s *Store) ChangeRepository() repository.ChangeRepository { return &changeRepo{s: s} }

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción: instantánea, callback, restaurar si falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados al store; revierte el estado si fn falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	changeRepo repository.ChangeRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.take()
	if err := fn(&itemRepo{s: r.store, locked: true}, &changeRepo{s: r.store, locked: true}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// itemRepo opera sobre el mapa de items. locked indica que el TxRunner ya
// tiene el mutex (los repos atados a la "tx" no deben volver a tomarlo).
type itemRepo struct {
	s      *Store
	locked bool
}

func (r *itemRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *itemRepo) GetByName(name string) (*entity.Item, error) {
	defer r.lock()()
	if it, ok := r.s.items[name]; ok {
		copied := it
		return &copied, nil
	}
	return nil, nil
}

func (r *itemRepo) Upsert(item *entity.Item) error {
	defer r.lock()()
	r.s.items[item.Name] = *item
	return nil
}

func (r *itemRepo) Delete(name string) error {
	defer r.lock()()
	delete(r.s.items, name)
	return nil
}

func (r *itemRepo) List() ([]*entity.Item, error) {
	defer r.lock()()
	list := make([]*entity.Item, 0, len(r.s.items))
	for name := range r.s.items {
		it := r.s.items[name]
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type changeRepo struct {
	s      *Store
	locked bool
}

func (r *changeRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *changeRepo) Append(record *entity.ChangeRecord) error {
	defer r.lock()()
	record.ID = r.s.nextID
	r.s.nextID++
	r.s.changes = append(r.s.changes, *record)
	return nil
}

func (r *changeRepo) List(source string) ([]*entity.ChangeRecord, error) {
	defer r.lock()()
	var list []*entity.ChangeRecord
	for i := range r.s.changes {
		if source != "" && r.s.changes[i].Source != source {
			continue
		}
		c := r.s.changes[i]
		list = append(list, &c)
	}
	return list, nil
}

func (r *changeRepo) ListSources() ([]string, error) {
	defer r.lock()()
	seen := make(map[string]struct{})
	var sources []string
	for i := range r.s.changes {
		if _, ok := seen[r.s.changes[i].Source]; ok {
			continue
		}
		seen[r.s.changes[i].Source] = struct{}{}
		sources = append(sources, r.s.changes[i].Source)
	}
	sort.Strings(sources)
	return sources, nil
}
