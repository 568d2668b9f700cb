package service

import (
	"sync"

	"github.com/google/uuid"
)

// AccountLocker hands out one mutex per account so balance mutations and the
// card issuance check-then-act are serialized per account. A single instance
// is shared by every service that mutates account state.
type AccountLocker struct {
	mutexes sync.Map
}

// NewAccountLocker creates an empty locker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{}
}

// Lock returns the mutex for a specific account ID.
func (l *AccountLocker) Lock(accountID uuid.UUID) *sync.Mutex {
	value, _ := l.mutexes.LoadOrStore(accountID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}
