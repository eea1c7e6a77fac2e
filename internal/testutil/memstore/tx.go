package memstore

import (
	"context"
	"sync"
)

type txKey struct{}

// tx удерживаемые транзакцией блокировки
type tx struct {
	mu   sync.Mutex
	held map[lockKey]*sync.Mutex
}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// TxManager транзакции в памяти: записи видны сразу, блокировки
// снимаются при завершении внешней транзакции. Отката нет.
type TxManager struct{}

// NewTxManager создает менеджер транзакций
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn в транзакции, вложенные вызовы присоединяются к внешней
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	t := &tx{held: make(map[lockKey]*sync.Mutex)}
	defer t.release()

	return fn(context.WithValue(ctx, txKey{}, t))
}

func (t *tx) acquire(key lockKey, lock *sync.Mutex) {
	t.mu.Lock()
	_, already := t.held[key]
	t.mu.Unlock()
	if already {
		return
	}

	lock.Lock()

	t.mu.Lock()
	t.held[key] = lock
	t.mu.Unlock()
}

func (t *tx) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, lock := range t.held {
		lock.Unlock()
		delete(t.held, key)
	}
}
