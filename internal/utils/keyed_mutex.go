package utils

import "sync"

// KeyedMutex serializes critical sections per string key. Used to serialize
// ledger posts per account and rate store mutations per tenant/scope pair.
// The zero value is ready to use.
type KeyedMutex struct {
	mutexes sync.Map
}

// Lock acquires the mutex for key and returns its unlock function.
//
//	unlock := km.Lock(accountID)
//	defer unlock()
func (km *KeyedMutex) Lock(key string) func() {
	value, _ := km.mutexes.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
