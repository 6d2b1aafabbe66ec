package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/domain"
	"github.com/ricirt/api-stub/internal/future"
)

// Observer is notified after every Health call. served is false when the
// example set was empty and the call resolved with no payload.
type Observer func(served bool)

// HealthService answers the health operation of the generated stub API.
// There is no probing behind it: the answer is the first configured example.
type HealthService struct {
	examples *Examples
	logger   *zap.Logger
	observe  Observer
}

// NewHealthService builds the service. observe is optional (nil = no-op).
func NewHealthService(examples *Examples, logger *zap.Logger, observe Observer) *HealthService {
	if observe == nil {
		observe = func(bool) {}
	}
	return &HealthService{examples: examples, logger: logger, observe: observe}
}

// Health resolves with a copy of the first example payload, or with nil when
// no example is configured. The returned Future always resolves; it never
// carries an error of its own.
func (s *HealthService) Health(_ context.Context) *future.Future[*domain.APIResponse] {
	ex, ok := s.examples.First()
	if !ok {
		s.logger.Debug("health: no example configured, resolving empty")
		s.observe(false)
		return future.Resolved[*domain.APIResponse](nil)
	}

	payload := ex.Payload
	s.observe(true)
	return future.Resolved(&payload)
}
