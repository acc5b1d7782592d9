package services

import (
	"testing"

	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/rs/zerolog"
)

type fakeUserLister struct {
	ids []uint
}

func (fake *fakeUserLister) ListActiveIDs() ([]uint, error) {
	return fake.ids, nil
}

func TestSweepTrainsDueModelsForActiveUsers(t *testing.T) {
	t.Parallel()

	moods := moodsWithCreatedAt(day("2024-01-01"), day("2024-01-02"), day("2024-01-03"))
	store := &fakeModelStore{}
	retrain := NewRetrainService(
		[]SignalPredictor{
			&trainStub{modelType: models.ModelTypeEnergy, data: []byte{1}, accuracy: 0.8},
		},
		moods, store, defaultRetrainConfig(), zerolog.Nop(),
	)
	scheduler := NewRetrainScheduler(&fakeUserLister{ids: []uint{1}}, retrain, "0 3 * * *", zerolog.Nop())

	scheduler.Sweep()

	if len(store.records) != 1 {
		t.Fatalf("stored %d models after sweep, want 1", len(store.records))
	}
	if store.records[0].ModelType != models.ModelTypeEnergy {
		t.Fatalf("trained %q, want energy", store.records[0].ModelType)
	}
}

func TestSweepWithNoUsersDoesNothing(t *testing.T) {
	t.Parallel()

	store := &fakeModelStore{}
	retrain := NewRetrainService(nil, &fakeMoods{}, store, defaultRetrainConfig(), zerolog.Nop())
	scheduler := NewRetrainScheduler(&fakeUserLister{}, retrain, "0 3 * * *", zerolog.Nop())

	scheduler.Sweep()

	if len(store.records) != 0 {
		t.Fatalf("stored %d models, want 0", len(store.records))
	}
}
