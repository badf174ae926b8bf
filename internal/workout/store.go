package workout

// Store keeps workouts in creation order. It has no removal and is not safe
// for concurrent use; callers serialize access.
type Store struct {
	items []*Workout
	index map[string]int
}

func NewStore() *Store {
	return &Store{index: map[string]int{}}
}

func (s *Store) Add(w *Workout) error {
	if _, exists := s.index[w.ID()]; exists {
		return &DuplicateIDError{ID: w.ID()}
	}
	s.index[w.ID()] = len(s.items)
	s.items = append(s.items, w)
	return nil
}

func (s *Store) FindByID(id string) (*Workout, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.items[i], nil
}

// All returns the workouts in insertion order. The slice is a copy.
func (s *Store) All() []*Workout {
	out := make([]*Workout, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}
