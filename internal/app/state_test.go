package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei/cv-tailor/internal/store"
	"github.com/andrei/cv-tailor/internal/types"
)

func TestNew_StartsWithDefaultProfile(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)
	assert.Equal(t, types.DefaultCandidateProfile(), s.Profile())
	assert.Empty(t, s.VacancyText())
	_, hasOutput := s.Output()
	assert.False(t, hasOutput)
}

func TestSetProfile_CommitsAndPersistsDebounced(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, 10*time.Millisecond)

	profile := types.DefaultCandidateProfile()
	profile.Summary = "обновлено"
	s.SetProfile(profile)

	assert.Equal(t, "обновлено", s.Profile().Summary)

	assert.Eventually(t, func() bool {
		data, err := kv.Load(context.Background(), store.KeyProfile)
		if err != nil {
			return false
		}
		var saved types.CandidateProfile
		return json.Unmarshal(data, &saved) == nil && saved.Summary == "обновлено"
	}, time.Second, 5*time.Millisecond)
}

func TestProfile_ReturnsIndependentCopy(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)

	copy1 := s.Profile()
	copy1.Experience[0].Company = "изменено"

	assert.Equal(t, "ООО «Технологии»", s.Profile().Experience[0].Company)
}

func TestLoadSaved_ReadsPersistedProfile(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	saved := types.DefaultCandidateProfile()
	saved.Summary = "из хранилища"
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, kv.Save(ctx, store.KeyProfile, data))

	s := New(kv, time.Millisecond)
	s.LoadSaved(ctx)
	assert.Equal(t, "из хранилища", s.Profile().Summary)
}

func TestLoadSaved_UnreadableFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Save(ctx, store.KeyProfile, []byte("{сломано")))

	s := New(kv, time.Millisecond)
	s.LoadSaved(ctx)
	assert.Equal(t, types.DefaultCandidateProfile(), s.Profile())
}

func TestBeginGeneration_ClearsErrorAndOutputSetsLoading(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)
	s.SetError("старая ошибка")
	s.FinishGeneration(&types.GenerationOutput{Resume: "старое"}, "")

	require.NoError(t, s.BeginGeneration())

	assert.True(t, s.Loading())
	assert.Empty(t, s.ErrorMessage())
	_, hasOutput := s.Output()
	assert.False(t, hasOutput)
}

func TestBeginGeneration_RejectsConcurrent(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)
	require.NoError(t, s.BeginGeneration())
	assert.ErrorIs(t, s.BeginGeneration(), ErrGenerationInFlight)

	s.FinishGeneration(nil, "ошибка")
	assert.NoError(t, s.BeginGeneration())
}

func TestFinishGeneration_AlwaysExitsLoading(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)

	require.NoError(t, s.BeginGeneration())
	s.FinishGeneration(&types.GenerationOutput{Resume: "# R", CoverLetter: "# L"}, "")
	assert.False(t, s.Loading())
	out, ok := s.Output()
	require.True(t, ok)
	assert.Equal(t, "# R", out.Resume)

	require.NoError(t, s.BeginGeneration())
	s.FinishGeneration(nil, "не получилось")
	assert.False(t, s.Loading())
	assert.Equal(t, "не получилось", s.ErrorMessage())
	_, ok = s.Output()
	assert.False(t, ok)
}

func TestRestore_AtomicRevisit(t *testing.T) {
	s := New(store.NewMemory(), time.Millisecond)
	s.SetError("ошибка до")

	item := types.NewHistoryItem("вакансия из истории", types.DefaultCandidateProfile(),
		types.GenerationOutput{Resume: "# R", CoverLetter: "# L"})

	s.Restore(item)

	assert.Equal(t, "вакансия из истории", s.VacancyText())
	assert.Equal(t, item.CandidateProfile, s.Profile())
	out, ok := s.Output()
	require.True(t, ok)
	assert.Equal(t, item.Output, out)
	assert.Empty(t, s.ErrorMessage())
}

func TestFlush_WritesPendingProfileNow(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, time.Hour)

	profile := s.Profile()
	profile.Summary = "не потеряй меня"
	s.SetProfile(profile)

	s.Flush()

	data, err := kv.Load(context.Background(), store.KeyProfile)
	require.NoError(t, err)
	var saved types.CandidateProfile
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "не потеряй меня", saved.Summary)
}
