package hub

import "sync"

// Hub раздаёт значения всем подписчикам.
// Отправка неблокирующая: если буфер подписчика заполнен, значение для него теряется.
type Hub[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan T
}

func New[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe регистрирует подписчика. Возвращаемая функция отписывает его и закрывает канал.
func (h *Hub[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish отправляет значение всем подписчикам без ожидания
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// PublishLast как Publish, но при полном буфере вытесняет самое старое значение,
// чтобы последнее сообщение дошло гарантированно
func (h *Hub[T]) PublishLast(v T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Len количество активных подписчиков
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
