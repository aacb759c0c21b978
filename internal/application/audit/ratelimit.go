package audit

import (
	"sync"
	"time"
)

// RateLimiter limita eventos por actor con una ventana por minuto. El contador
// vive en memoria del proceso: válido solo para despliegues de una instancia.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	ventana time.Time // minuto truncado
	count   int
}

// NewRateLimiter construye el limitador con el máximo por actor por minuto.
func NewRateLimiter(max int) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	return &RateLimiter{
		max:     max,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj. Solo para tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow consume un cupo del actor. Devuelve false si el actor agotó la ventana.
func (rl *RateLimiter) Allow(actorID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ventana := rl.now().Truncate(time.Minute)
	b, ok := rl.buckets[actorID]
	if !ok || !b.ventana.Equal(ventana) {
		rl.buckets[actorID] = &bucket{ventana: ventana, count: 1}
		rl.limpiar(ventana)
		return true
	}
	if b.count >= rl.max {
		return false
	}
	b.count++
	return true
}

// limpiar descarta ventanas vencidas para que el mapa no crezca sin límite.
func (rl *RateLimiter) limpiar(actual time.Time) {
	for actor, b := range rl.buckets {
		if !b.ventana.Equal(actual) {
			delete(rl.buckets, actor)
		}
	}
}
