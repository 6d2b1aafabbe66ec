package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/domain"
	"github.com/ricirt/api-stub/internal/service"
)

var wantHealth = domain.APIResponse{
	Code:      200,
	Message:   "Testing",
	Timestamp: 946684800,
	Type:      "String",
}

func newService(examples *service.Examples) *service.HealthService {
	return service.NewHealthService(examples, zap.NewNop(), nil)
}

func await(t *testing.T, svc *service.HealthService) *domain.APIResponse {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := svc.Health(ctx).Await(ctx)
	if err != nil {
		t.Fatalf("Health did not resolve: %v", err)
	}
	return got
}

func TestHealthService_Health(t *testing.T) {
	svc := newService(service.DefaultExamples())

	got := await(t, svc)
	if got == nil {
		t.Fatal("expected a payload, got nil")
	}
	if *got != wantHealth {
		t.Fatalf("expected %+v, got %+v", wantHealth, *got)
	}
}

func TestHealthService_Health_RepeatedCallsAreEqual(t *testing.T) {
	svc := newService(service.DefaultExamples())

	first := await(t, svc)
	second := await(t, svc)

	if first == second {
		t.Fatal("expected each call to hand out its own copy")
	}
	if *first != *second || *first != wantHealth {
		t.Fatalf("expected equal payloads, got %+v and %+v", *first, *second)
	}
}

func TestHealthService_Health_CallerMutationDoesNotLeak(t *testing.T) {
	svc := newService(service.DefaultExamples())

	first := await(t, svc)
	first.Message = "changed"

	if second := await(t, svc); *second != wantHealth {
		t.Fatalf("mutation leaked: %+v", *second)
	}
}

func TestHealthService_Health_EmptyExamplesResolvesNil(t *testing.T) {
	examples := service.DefaultExamples()
	examples.Remove(domain.ContentTypeJSON)

	svc := newService(examples)
	if got := await(t, svc); got != nil {
		t.Fatalf("expected nil payload, got %+v", *got)
	}
}

func TestHealthService_Health_FirstExampleWins(t *testing.T) {
	alt := wantHealth
	alt.Message = "xml"

	examples := service.NewExamples(
		service.Example{ContentType: "application/xml", Payload: alt},
		service.Example{ContentType: domain.ContentTypeJSON, Payload: wantHealth},
	)
	svc := newService(examples)

	if got := await(t, svc); got.Message != "xml" {
		t.Fatalf("expected first inserted example, got %+v", *got)
	}
}

func TestHealthService_Health_Observer(t *testing.T) {
	tests := []struct {
		name     string
		examples *service.Examples
		want     bool
	}{
		{"served", service.DefaultExamples(), true},
		{"empty", service.NewExamples(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls []bool
			svc := service.NewHealthService(tc.examples, zap.NewNop(), func(served bool) {
				calls = append(calls, served)
			})

			await(t, svc)

			if len(calls) != 1 || calls[0] != tc.want {
				t.Fatalf("expected one observation of %v, got %v", tc.want, calls)
			}
		})
	}
}

func TestHealthService_Health_Concurrent(t *testing.T) {
	svc := newService(service.DefaultExamples())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Health(ctx).Await(ctx)
			if err != nil || got == nil || *got != wantHealth {
				t.Errorf("unexpected result: %v %v", got, err)
			}
		}()
	}
	wg.Wait()
}
