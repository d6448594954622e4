package noticia

import "time"

// SetNow fixa o relógio do serviço nos testes
func (s *Service) SetNow(now func() time.Time) {
	s.nowFunc = now
}
