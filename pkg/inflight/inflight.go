package inflight

import "sync"

// Guard синхронная защита от повторной отправки одного и того же действия.
// На каждый ключ выдаётся монотонно растущий токен поколения: снять защёлку
// может только то обращение, чей токен всё ещё является последним выданным.
// Устаревшее (прерванное) обращение не может снять защёлку более нового владельца
type Guard struct {
	mu      sync.Mutex
	entries map[string]uint64
	seq     uint64
}

// New создает пустой guard
func New() *Guard {
	return &Guard{entries: make(map[string]uint64)}
}

// Acquire пытается захватить ключ.
// Возвращает токен поколения и true при успехе.
// Если ключ уже в полёте, возвращает false - повторная отправка должна быть прервана
func (g *Guard) Acquire(key string) (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.entries[key]; busy {
		return 0, false
	}

	g.seq++
	g.entries[key] = g.seq
	return g.seq, true
}

// Release снимает защёлку, только если token совпадает с текущим владельцем ключа.
// Возвращает true, если защёлка была снята
func (g *Guard) Release(key string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	owner, ok := g.entries[key]
	if !ok || owner != token {
		return false
	}

	delete(g.entries, key)
	return true
}

// InFlight сообщает, захвачен ли ключ в данный момент
func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, busy := g.entries[key]
	return busy
}
