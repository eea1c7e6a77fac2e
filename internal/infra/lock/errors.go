package lock

import "errors"

var (
	// ErrAcquire возвращается при сбое Redis во время захвата
	ErrAcquire = errors.New("lock: failed to acquire")

	// ErrRelease возвращается при сбое Redis во время освобождения
	ErrRelease = errors.New("lock: failed to release")

	// ErrNotHeld возвращается, когда ключ уже занят другим владельцем или истек
	ErrNotHeld = errors.New("lock: not held by this owner")
)
