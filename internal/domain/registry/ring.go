package registry

import "github.com/jhoicas/registro-clientes/internal/domain/entity"

// MaxRecentOperations capacidad fija del historial reciente.
const MaxRecentOperations = 50

// opRing cola FIFO acotada: al llenarse, push descarta la operación más antigua.
type opRing struct {
	buf   [MaxRecentOperations]entity.Operation
	start int
	size  int
}

func (r *opRing) push(op entity.Operation) {
	if r.size == len(r.buf) {
		r.buf[r.start] = op
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[(r.start+r.size)%len(r.buf)] = op
	r.size++
}

// last devuelve las últimas min(n, size) operaciones, de la más antigua a la más reciente.
func (r *opRing) last(n int) []entity.Operation {
	if n <= 0 {
		return []entity.Operation{}
	}
	if n > r.size {
		n = r.size
	}
	out := make([]entity.Operation, 0, n)
	for i := r.size - n; i < r.size; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}

func (r *opRing) len() int { return r.size }

func (r *opRing) reset() {
	*r = opRing{}
}
