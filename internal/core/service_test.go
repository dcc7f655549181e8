package core

import (
	"testing"
	"time"

	"landscapecore/internal/session"
	"landscapecore/pkg/domain"
)

func TestCorruptPayloadTreatedAsAbsent(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(store)
	if err := store.Set("prioritized_livelihoods", []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := loadList[domain.PrioritizedLivelihood](svc, "prioritized_livelihoods"); got != nil {
		t.Fatalf("corrupt payload should read as empty, got %+v", got)
	}
	if err := store.Set("workshop_context", []byte("[1,2,3]")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := svc.Context(); ok {
		t.Fatalf("structurally incompatible payload should read as absent")
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	if err := svc.SetContext(domain.WorkshopContext{Country: "Ecuador"}); err != nil {
		t.Fatalf("context: %v", err)
	}
	if err := svc.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if keys := svc.Store().Keys(); len(keys) != 0 {
		t.Fatalf("keys after reset = %v", keys)
	}
}

func TestStoreCounts(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura", "Pesca")
	if err := svc.SetContext(domain.WorkshopContext{Country: "Perú"}); err != nil {
		t.Fatalf("context: %v", err)
	}
	counts := svc.StoreCounts()
	if counts["catalog_livelihoods"] != 2 {
		t.Fatalf("catalog count = %d", counts["catalog_livelihoods"])
	}
	if counts["workshop_context"] != 1 {
		t.Fatalf("context count = %d", counts["workshop_context"])
	}
}

func TestMetricsObservedOnOperations(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	svc := NewService(session.NewMemoryStore(),
		WithMetrics(rec),
		WithNowFunc(func() time.Time { return time.Unix(100, 0).UTC() }))
	if _, err := svc.ImportTable(IntakeTable{}); err == nil {
		t.Fatalf("expected empty import to fail")
	}
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	snap := rec.Snapshot()
	if snap.Results["intake_import"]["error"] != 1 {
		t.Fatalf("results = %+v", snap.Results)
	}
}

func TestAnswerQuestionValidation(t *testing.T) {
	svc := newTestService(t)
	if err := svc.AnswerQuestion(1, "mucho"); err == nil {
		t.Fatalf("expected non-bucket answer to fail")
	}
	if err := svc.AnswerQuestion(1, "40-60"); err != nil {
		t.Fatalf("bucket answer: %v", err)
	}
	if err := svc.AnswerQuestion(6, "  "); err == nil {
		t.Fatalf("expected empty text answer to fail")
	}
	if err := svc.AnswerQuestion(6, "plan de ordenamiento vigente"); err != nil {
		t.Fatalf("text answer: %v", err)
	}
	if err := svc.AnswerQuestion(99, "x"); err == nil {
		t.Fatalf("expected unknown question to fail")
	}
	responses := svc.QuestionnaireResponses()
	if responses[1] != "40-60" || responses[6] == "" {
		t.Fatalf("responses = %+v", responses)
	}
}
