package core

import (
	"testing"

	"landscapecore/pkg/domain"
)

func TestSaveActorInsertAndUpdate(t *testing.T) {
	svc := newTestService(t)
	actor, err := svc.SaveActor(domain.LandscapeActor{Name: "Municipio", Power: 8, Interest: 5})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if actor.ID == "" {
		t.Fatalf("missing id")
	}
	actor.Interest = 9
	if _, err := svc.SaveActor(actor); err != nil {
		t.Fatalf("update: %v", err)
	}
	roster := svc.Actors()
	if len(roster) != 1 || roster[0].Interest != 9 {
		t.Fatalf("roster = %+v", roster)
	}
	if _, err := svc.SaveActor(domain.LandscapeActor{Name: "x", Power: 11}); err == nil {
		t.Fatalf("expected out-of-range power to fail")
	}
}

func TestDiagramLettersLazyAndStable(t *testing.T) {
	svc := newTestService(t)
	a, _ := svc.SaveActor(domain.LandscapeActor{Name: "Junta"})
	b, _ := svc.SaveActor(domain.LandscapeActor{Name: "ONG"})

	letterB, err := svc.AssignDiagramLetter(b.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if letterB != "A" {
		t.Fatalf("first assigned letter = %q", letterB)
	}
	letterA, _ := svc.AssignDiagramLetter(a.ID)
	if letterA != "B" {
		t.Fatalf("second assigned letter = %q, must skip used ones", letterA)
	}
	again, _ := svc.AssignDiagramLetter(b.ID)
	if again != "A" {
		t.Fatalf("letter not stable: %q", again)
	}
}

func TestActorRelationshipsOneDirectional(t *testing.T) {
	svc := newTestService(t)
	a, _ := svc.SaveActor(domain.LandscapeActor{Name: "Junta"})
	b, _ := svc.SaveActor(domain.LandscapeActor{Name: "ONG"})

	err := svc.SetActorRelationships(a.ID, []domain.ActorRelationship{
		{ActorID: b.ID, Type: domain.RelationCollaboration, Theme: "riego"},
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	roster := svc.Actors()
	var savedA, savedB domain.LandscapeActor
	for _, actor := range roster {
		switch actor.ID {
		case a.ID:
			savedA = actor
		case b.ID:
			savedB = actor
		}
	}
	if len(savedA.Relationships) != 1 {
		t.Fatalf("edge missing on editing actor: %+v", savedA)
	}
	if len(savedB.Relationships) != 0 {
		t.Fatalf("inverse edge must not be created: %+v", savedB)
	}
	err = svc.SetActorRelationships(a.ID, []domain.ActorRelationship{{ActorID: "ghost"}})
	if err == nil {
		t.Fatalf("expected unknown related actor to fail")
	}
}

func TestDialogueSpacesCRUD(t *testing.T) {
	svc := newTestService(t)
	space, err := svc.SaveDialogueSpace(domain.DialogueSpace{Name: "Mesa de agua", Formality: "formal", Incidence: "high"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	space.Incidence = "medium"
	if _, err := svc.SaveDialogueSpace(space); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.DialogueSpaces(); len(got) != 1 || got[0].Incidence != "medium" {
		t.Fatalf("spaces = %+v", got)
	}
	if err := svc.DeleteDialogueSpace(space.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.DialogueSpaces(); len(got) != 0 {
		t.Fatalf("spaces after delete = %+v", got)
	}
}

func TestParticipationStrategyRoundTrip(t *testing.T) {
	svc := newTestService(t)
	if _, ok := svc.ParticipationStrategy(); ok {
		t.Fatalf("strategy should start absent")
	}
	strategy := domain.ParticipationStrategy{
		WorkshopMakeup:     "un solo taller con todos los actores",
		InclusionMeasures:  "grupos de trabajo separados para mujeres y jóvenes",
		ConflictGuidelines: "pautas de convivencia acordadas al inicio",
	}
	if err := svc.SaveParticipationStrategy(strategy); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, ok := svc.ParticipationStrategy()
	if !ok || saved != strategy {
		t.Fatalf("saved strategy = %+v, %v", saved, ok)
	}
	strategy.OtherStrategies = "traducción al kichwa"
	if err := svc.SaveParticipationStrategy(strategy); err != nil {
		t.Fatalf("resave: %v", err)
	}
	saved, _ = svc.ParticipationStrategy()
	if saved.OtherStrategies != "traducción al kichwa" {
		t.Fatalf("update lost: %+v", saved)
	}
}

func TestConvenedActorsAndAgenda(t *testing.T) {
	svc := newTestService(t)
	actor, err := svc.SaveConvenedActor(domain.ConvenedActor{Name: "Lideresa comunal", Power: 6, Interest: 8})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := svc.SaveConvenedActor(domain.ConvenedActor{Name: ""}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := svc.DeleteConvenedActor(actor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	agenda := []domain.AgendaItem{
		{Time: "09:00", Activity: "Bienvenida"},
		{Time: "09:30", Activity: "Mapeo de medios de vida"},
	}
	if err := svc.SaveAgenda(agenda); err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if err := svc.SaveAgenda([]domain.AgendaItem{{Time: "10:00"}}); err == nil {
		t.Fatalf("expected agenda item without activity to fail")
	}
	if got := svc.Agenda(); len(got) != 2 || got[1].Activity != "Mapeo de medios de vida" {
		t.Fatalf("agenda = %+v", got)
	}
}
