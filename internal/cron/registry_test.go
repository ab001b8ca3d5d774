package cron

import (
	"reflect"
	"testing"

	"github.com/angelmondragon/vendo-storefront/internal/session"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

func storefrontJobs(t *testing.T) (Job, Job) {
	t.Helper()
	refresh, err := NewCatalogRefreshJob(CatalogRefreshJobParams{Logger: logger.Nop(), Provider: &stubRefresher{}})
	if err != nil {
		t.Fatalf("refresh job: %v", err)
	}
	sweep, err := NewSessionSweepJob(SessionSweepJobParams{
		Logger:   logger.Nop(),
		Sweepers: map[string]session.Sweeper{"carts": &stubSweeper{}},
	})
	if err != nil {
		t.Fatalf("sweep job: %v", err)
	}
	return refresh, sweep
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	refresh, sweep := storefrontJobs(t)
	registry := NewRegistry()
	if err := registry.Register(refresh); err != nil {
		t.Fatalf("register refresh: %v", err)
	}
	if err := registry.Register(sweep); err != nil {
		t.Fatalf("register sweep: %v", err)
	}

	if got, want := registry.Names(), []string{"catalog-refresh", "session-sweep"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected names %v, got %v", want, got)
	}

	jobs := registry.Jobs()
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatal("Jobs leaked the internal slice")
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	refresh, _ := storefrontJobs(t)
	again, _ := storefrontJobs(t)

	registry := NewRegistry(refresh, nil, again)
	if got := registry.Names(); len(got) != 1 {
		t.Fatalf("expected the duplicate and the nil to be skipped, got %v", got)
	}
	if err := registry.Register(again); err == nil {
		t.Fatal("expected duplicate catalog-refresh to be rejected")
	}
	if err := registry.Register(nil); err != nil {
		t.Fatalf("nil job should be ignored, got %v", err)
	}

	var zero Registry
	if err := zero.Register(refresh); err != nil {
		t.Fatalf("zero registry register: %v", err)
	}
	if len(zero.Jobs()) != 1 {
		t.Fatal("expected zero-value registry to accept jobs")
	}
}
