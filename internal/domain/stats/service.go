package stats

import "context"

// Totals son los contadores agregados de la plataforma.
type Totals struct {
	PetsTotal     int
	PetsAvailable int
	PetsPending   int
	PetsAdopted   int

	ApplicationsTotal    int
	ApplicationsPending  int
	ApplicationsApproved int
	ApplicationsRejected int
}

// Source la implementa cada adapter de storage (GROUP BY en Postgres,
// recorrido de mapas en memory).
type Source interface {
	Totals(ctx context.Context) (Totals, error)
}

type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

func (s *Service) Overview(ctx context.Context) (Totals, error) {
	return s.src.Totals(ctx)
}
